// Package naming is a small hierarchical directory. Names are paths of
// id/kind components resolved through nested namespaces; event channels are
// published through ChannelDirectory.
package naming
