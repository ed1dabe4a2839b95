package naming

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace_BindResolve(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.Bind(MustParseName("obj"), "value"))

	v, err := ns.Resolve(MustParseName("obj"))
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	err = ns.Bind(MustParseName("obj"), "other")
	require.ErrorIs(t, err, ErrAlreadyBound)

	require.ErrorIs(t, ns.Bind(nil, "x"), ErrInvalidName)
	require.ErrorIs(t, ns.Bind(Name{{}}, "x"), ErrInvalidName)
	require.ErrorIs(t, ns.Bind(MustParseName("nil"), nil), ErrInvalidName)
	_, err = ns.Resolve(Name{})
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestNamespace_Nested(t *testing.T) {
	root := NewNamespace()
	child, err := root.BindNewNamespace(MustParseName("a"))
	require.NoError(t, err)
	_, err = child.BindNewNamespace(MustParseName("b"))
	require.NoError(t, err)

	require.NoError(t, root.Bind(MustParseName("a/b/c.EventChannel"), 42))
	v, err := root.Resolve(MustParseName("a/b/c.EventChannel"))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = root.Resolve(MustParseName("a"))
	require.NoError(t, err)
	assert.Same(t, child, v)

	t.Run("missing node reports the rest of the name", func(t *testing.T) {
		_, err := root.Resolve(MustParseName("a/x/y"))
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, MissingNode, nf.Reason)
		assert.Equal(t, "x/y", nf.RestOfName.String())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("object in the middle", func(t *testing.T) {
		require.NoError(t, root.Bind(MustParseName("leaf"), "x"))
		err := root.Bind(MustParseName("leaf/deeper"), "y")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, NotContext, nf.Reason)
		assert.Equal(t, "leaf/deeper", nf.RestOfName.String())
	})

	t.Run("unbind", func(t *testing.T) {
		require.NoError(t, root.Unbind(MustParseName("a/b/c.EventChannel")))
		_, err := root.Resolve(MustParseName("a/b/c.EventChannel"))
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, root.Unbind(MustParseName("a/b/c.EventChannel")), ErrNotFound)
	})
}

func TestNamespace_Rebind(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.Rebind(MustParseName("x"), 1))
	require.NoError(t, ns.Rebind(MustParseName("x"), 2))
	v, err := ns.Resolve(MustParseName("x"))
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	var nf *NotFoundError
	err = ns.RebindNamespace(MustParseName("x"), NewNamespace())
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotContext, nf.Reason)

	require.NoError(t, ns.BindNamespace(MustParseName("ctx"), NewNamespace()))
	replacement := NewNamespace()
	require.NoError(t, ns.RebindNamespace(MustParseName("ctx"), replacement))
	v, err = ns.Resolve(MustParseName("ctx"))
	require.NoError(t, err)
	assert.Same(t, replacement, v)

	err = ns.Rebind(MustParseName("ctx"), "object")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotObject, nf.Reason)

	require.ErrorIs(t, ns.BindNamespace(MustParseName("nil"), nil), ErrInvalidName)
}

func TestNamespace_List(t *testing.T) {
	ns := NewNamespace()
	for i := 0; i < 5; i++ {
		require.NoError(t, ns.Bind(MustParseName(fmt.Sprintf("obj%d", i)), i))
	}
	_, err := ns.BindNewNamespace(MustParseName("sub"))
	require.NoError(t, err)

	all, it := ns.List(10)
	assert.Nil(t, it)
	require.Len(t, all, 6)
	assert.Equal(t, "obj0", all[0].Name.ID)
	assert.Equal(t, BindingNamespace, all[5].Type)

	first, it := ns.List(2)
	require.NotNil(t, it)
	assert.Equal(t, []string{"obj0", "obj1"}, []string{first[0].Name.ID, first[1].Name.ID})

	b, ok := it.NextOne()
	require.True(t, ok)
	assert.Equal(t, "obj2", b.Name.ID)

	rest, ok := it.NextN(10)
	require.True(t, ok)
	require.Len(t, rest, 3)
	assert.Equal(t, "sub", rest[2].Name.ID)

	_, ok = it.NextOne()
	assert.False(t, ok)
	_, ok = it.NextN(1)
	assert.False(t, ok)

	_, it = ns.List(0)
	require.NotNil(t, it)
	it.Destroy()
	_, ok = it.NextOne()
	assert.False(t, ok)
}

func TestNamespace_Destroy(t *testing.T) {
	root := NewNamespace()
	child, err := root.BindNewNamespace(MustParseName("child"))
	require.NoError(t, err)
	require.NoError(t, child.Bind(MustParseName("x"), 1))

	require.ErrorIs(t, child.Destroy(), ErrNotEmpty)

	require.NoError(t, child.Unbind(MustParseName("x")))
	require.NoError(t, child.Destroy())

	err = root.Bind(MustParseName("child/y"), 2)
	var cp *CannotProceedError
	require.ErrorAs(t, err, &cp)
	assert.ErrorIs(t, err, ErrCannotProceed)
	assert.Equal(t, "y", cp.RestOfName.String())

	_, err = root.Resolve(MustParseName("child/y"))
	require.ErrorIs(t, err, ErrCannotProceed)
}

func TestNamespace_ConcurrentBind(t *testing.T) {
	ns := NewNamespace()
	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- ns.Bind(MustParseName("contested"), i)
		}(i)
	}
	wg.Wait()
	close(errs)

	var won int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.True(t, errors.Is(err, ErrAlreadyBound))
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, ns.Len())
}
