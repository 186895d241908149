package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	c := NewCatalog(NewStore(nil, ""))
	assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir"}, c.Names())

	_, _, ok := c.PendingRename()
	assert.False(t, ok)
}

func TestCatalog_Add(t *testing.T) {
	c := NewCatalog(NewStore(nil, ""))

	t.Run("appends trimmed names", func(t *testing.T) {
		require.NoError(t, c.Add("  Bursa  "))
		assert.Equal(t, "Bursa", c.Names()[3])
	})

	t.Run("rejects blank names", func(t *testing.T) {
		err := c.Add(" \t ")
		assert.True(t, IsInvalidName(err))
		assert.Len(t, c.Names(), 4)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		err := c.Add("Ankara")
		assert.True(t, IsInvalidName(err))
		assert.Len(t, c.Names(), 4)
	})
}

func TestCatalog_Remove(t *testing.T) {
	t.Run("leaves store data orphaned by default", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s)

		assert.True(t, c.Remove("Ankara"))
		assert.False(t, c.Remove("Ankara"))
		assert.Equal(t, []string{"İstanbul", "İzmir"}, c.Names())
		assert.Contains(t, s.TableNames(), "Ankara")
	})

	t.Run("cascades when enabled", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s, WithCascadeRemove(true))

		assert.True(t, c.Remove("Ankara"))
		assert.NotContains(t, s.TableNames(), "Ankara")
	})

	t.Run("discards a staged rename", func(t *testing.T) {
		c := NewCatalog(NewStore(nil, ""))
		require.NoError(t, c.PrepareRename("İzmir", 2))
		c.Remove("Ankara")
		_, _, ok := c.PendingRename()
		assert.False(t, ok)
	})
}

func TestCatalog_PrepareRename(t *testing.T) {
	c := NewCatalog(NewStore(nil, ""))

	t.Run("out of range index stages nothing", func(t *testing.T) {
		assert.True(t, IsNotFound(c.PrepareRename("X", 3)))
		assert.True(t, IsNotFound(c.PrepareRename("X", -1)))
		_, _, ok := c.PendingRename()
		assert.False(t, ok)
		assert.False(t, c.SetPendingName("Y"))
	})

	t.Run("stages name and index", func(t *testing.T) {
		require.NoError(t, c.PrepareRename("Ankara", 0))
		assert.True(t, c.SetPendingName("Başkent"))

		name, index, ok := c.PendingRename()
		assert.True(t, ok)
		assert.Equal(t, "Başkent", name)
		assert.Equal(t, 0, index)
	})
}

func TestCatalog_CommitRename(t *testing.T) {
	t.Run("renames catalog entry and store key together", func(t *testing.T) {
		s := NewStore(nil, "Ankara")
		c := NewCatalog(s)
		before := s.Records()

		require.NoError(t, c.PrepareRename("Ankara", 0))
		c.SetPendingName("  Başkent ")
		require.NoError(t, c.CommitRename())

		assert.Equal(t, []string{"Başkent", "İstanbul", "İzmir"}, c.Names())
		assert.Equal(t, []string{"Başkent", "İstanbul", "İzmir"}, s.TableNames())

		require.NoError(t, s.SelectTable("Başkent"))
		after := s.Records()
		require.Len(t, after, len(before))
		assert.True(t, before[0].Equal(after[0]))

		_, _, ok := c.PendingRename()
		assert.False(t, ok, "staged rename is cleared on success")
	})

	t.Run("rejected rename keeps both sides and the staged state", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s)

		require.NoError(t, c.PrepareRename("   ", 1))
		err := c.CommitRename()
		assert.True(t, IsInvalidName(err))
		assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir"}, c.Names())
		assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir"}, s.TableNames())

		_, _, ok := c.PendingRename()
		assert.True(t, ok, "staged rename is kept for correction")
	})

	t.Run("rejects a name already in the catalog", func(t *testing.T) {
		c := NewCatalog(NewStore(nil, ""))
		require.NoError(t, c.PrepareRename("İzmir", 0))
		assert.True(t, IsInvalidName(c.CommitRename()))
		assert.Equal(t, "Ankara", c.Names()[0])
	})

	t.Run("store conflict leaves the catalog untouched", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s)
		require.NoError(t, s.CreateTable("Bursa"))

		require.NoError(t, c.PrepareRename("Bursa", 0))
		err := c.CommitRename()
		assert.True(t, IsInvalidName(err))
		assert.Equal(t, "Ankara", c.Names()[0])
		assert.Contains(t, s.TableNames(), "Ankara")
	})

	t.Run("commit without a staged rename", func(t *testing.T) {
		c := NewCatalog(NewStore(nil, ""))
		assert.True(t, IsNotFound(c.CommitRename()))
	})

	t.Run("catalog-only name gets an empty table", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s)
		require.NoError(t, c.Add("Bursa"))

		require.NoError(t, c.PrepareRename("Trabzon", 3))
		require.NoError(t, c.CommitRename())
		assert.Equal(t, "Trabzon", c.Names()[3])
		assert.Contains(t, s.TableNames(), "Trabzon")
	})

	t.Run("differently cased entry does not take another table's data", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s)
		require.NoError(t, c.Add("ankara"))

		require.NoError(t, c.PrepareRename("Foo", 3))
		require.NoError(t, c.CommitRename())

		assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir", "Foo"}, c.Names())
		assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir", "Foo"}, s.TableNames())
		require.NoError(t, s.SelectTable("Ankara"))
		assert.Len(t, s.Records(), 2)
	})

	t.Run("unchanged name is accepted", func(t *testing.T) {
		s := NewStore(nil, "")
		c := NewCatalog(s)
		require.NoError(t, c.PrepareRename("Ankara", 0))
		require.NoError(t, c.CommitRename())
		assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir"}, s.TableNames())
	})
}
