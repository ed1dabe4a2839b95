/*
Package eventchannel provides an in-process publish/subscribe event channel
that decouples event producers from event consumers.

A Channel supports four connection models at the same time, each served by
its own kind of proxy:

  - ProxyPushConsumer: an external supplier pushes events into the channel
  - ProxyPushSupplier: the channel pushes every event to an external consumer
  - ProxyPullConsumer: the channel polls an external supplier in the background
  - ProxyPullSupplier: an external consumer pulls events out of the channel

Proxies are obtained from the two admins. Consumers go through ForConsumers,
suppliers through ForSuppliers.

# Basic Usage

	ch, err := eventchannel.New[string](eventchannel.WithName("orders"))
	if err != nil {
	    return err
	}
	defer ch.Destroy()

	consumers, _ := ch.ForConsumers()
	out, _ := consumers.ObtainPushSupplier()
	_ = out.ConnectPushConsumer(events.PushConsumerFunc[string](func(ctx context.Context, data string) error {
	    fmt.Println("received", data)
	    return nil
	}))

	suppliers, _ := ch.ForSuppliers()
	in, _ := suppliers.ObtainPushConsumer()
	_ = in.ConnectPushSupplier(nil)
	_ = in.Push(ctx, "order-1")

# Delivery

An event pushed into the channel is appended once to the channel's event
queue and, independently, handed to every push-supplier proxy. Each delivery
runs in its own goroutine, so there is no ordering between consumers, nor
between two events pushed concurrently to the same consumer. A consumer that
returns events.ErrDisconnected takes its proxy down; any other error is logged
and the event is dropped for that consumer.

The pull side is different: pull-supplier proxies of one channel compete for
the queue, and every queued event is handed to exactly one Pull or TryPull
call. The push side never drains the queue, so with no pull readers it grows
without bound.

# Pull Bridge

Connecting a pull supplier to a ProxyPullConsumer starts a polling task that
calls TryPull, pushes whatever it gets into the channel, and then sleeps for
the poll interval (100ms by default, see WithPollInterval). A supplier that
reports events.ErrDisconnected disconnects the proxy and ends the task; other
errors are logged and polling continues.

# Lifecycle

Every proxy connects at most once and disconnects at most once. After
disconnecting it rejects everything with events.ErrDisconnected and is removed
from the channel. Disconnecting notifies the connected peer, if any.

Destroy disconnects every proxy, stops the polling tasks and releases blocked
pulls. It does not wait for the polling tasks; WaitForStop does.

# Factory

A Factory creates channels with shared defaults and publishes named channels
to an optional Directory, typically a naming.ChannelDirectory.
*/
package eventchannel
