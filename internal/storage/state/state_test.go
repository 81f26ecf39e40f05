package state

import (
	"testing"

	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchStatus(t *testing.T) {
	type args struct {
		orderID string
		status  order.Status
	}
	tests := []struct {
		name      string
		args      args
		wantFound bool
	}{
		{name: "known_id", args: args{"42", order.StatusSending}, wantFound: true},
		{name: "unknown_id", args: args{"99", order.StatusSending}, wantFound: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			st.AddActive(order.Order{OrderID: "42", Status: order.StatusNew, Type: order.TypeDelivery, Code: "0042"})
			found := st.PatchStatus(tt.args.orderID, tt.args.status)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, 1, st.Len())
			ord, ok := st.Active("42")
			require.Equal(t, true, ok)
			if tt.wantFound {
				assert.Equal(t, tt.args.status, ord.Status)
			} else {
				assert.Equal(t, order.StatusNew, ord.Status)
			}
			assert.Equal(t, "0042", ord.Code)
		})
	}
}

func TestAddActiveReplacesSameID(t *testing.T) {
	st := NewState()
	st.AddActive(order.Order{OrderID: "1", Status: order.StatusNew})
	st.AddActive(order.Order{OrderID: "1", Status: order.StatusAccepted})
	assert.Equal(t, 1, st.Len())
	ord, ok := st.Active("1")
	require.Equal(t, true, ok)
	assert.Equal(t, order.StatusAccepted, ord.Status)
}

func TestComplete(t *testing.T) {
	st := NewState()
	st.AddActive(order.Order{OrderID: "1", Status: order.StatusSending, Type: order.TypePickup})

	done := order.Order{OrderID: "1", Status: order.StatusFinished, Type: order.TypePickup}
	assert.Equal(t, true, st.Complete(&done))
	assert.Equal(t, 0, st.Len())
	cur := st.Current()
	require.NotEqual(t, (*order.Order)(nil), cur)
	assert.Equal(t, order.StatusFinished, cur.Status)

	// repeated completion finds nothing and must report it
	assert.Equal(t, false, st.Complete(&done))
}

func TestListenersFireOnCommit(t *testing.T) {
	st := NewState()
	calls := 0
	st.Listen(func() { calls += 1 })
	st.AddActive(order.Order{OrderID: "1", Status: order.StatusNew})
	st.PatchStatus("1", order.StatusAccepted)
	st.PatchStatus("99", order.StatusAccepted)
	assert.Equal(t, 2, calls)
}

func TestSetActiveReplacesWholeSet(t *testing.T) {
	st := NewState()
	st.AddActive(order.Order{OrderID: "1", Status: order.StatusNew})
	st.SetActive([]order.Order{
		{OrderID: "2", Status: order.StatusAccepted},
		{OrderID: "3", Status: order.StatusSending},
	})
	assert.Equal(t, 2, st.Len())
	_, ok := st.Active("1")
	assert.Equal(t, false, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	st := NewState()
	st.AddActive(order.Order{OrderID: "1", Status: order.StatusNew})
	snap := st.Snapshot()
	snap[0].Status = order.StatusRejected
	ord, ok := st.Active("1")
	require.Equal(t, true, ok)
	assert.Equal(t, order.StatusNew, ord.Status)
}

func TestSetCurrentOverwrites(t *testing.T) {
	st := NewState()
	st.SetCurrent(&order.Order{OrderID: "1", Status: order.StatusNew})
	st.SetCurrent(&order.Order{OrderID: "2", Status: order.StatusAccepted})
	cur := st.Current()
	require.NotEqual(t, (*order.Order)(nil), cur)
	assert.Equal(t, "2", cur.OrderID)
	st.SetCurrent(nil)
	assert.Equal(t, (*order.Order)(nil), st.Current())
}
