package state

import "testing"

func TestStore_GetReturnsCurrentSnapshot(t *testing.T) {
	store := NewStore(1)

	if got := store.Get(); got != 1 {
		t.Errorf("期望初始快照=1，实际=%d", got)
	}

	store.Set(2)
	if got := store.Get(); got != 2 {
		t.Errorf("期望快照=2，实际=%d", got)
	}
}

func TestStore_SetNotifiesAllObservers(t *testing.T) {
	store := NewStore("")

	var first, second []string
	store.Subscribe(func(s string) { first = append(first, s) })
	store.Subscribe(func(s string) { second = append(second, s) })

	store.Set("a")
	store.Set("b")

	for name, got := range map[string][]string{"first": first, "second": second} {
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("观察者 %s 应收到全部变更，实际=%v", name, got)
		}
	}
}

func TestStore_CancelStopsNotifications(t *testing.T) {
	store := NewStore(0)

	var got []int
	cancel := store.Subscribe(func(v int) { got = append(got, v) })

	store.Set(1)
	cancel()
	store.Set(2)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("取消后不应再收到通知，实际=%v", got)
	}
}

func TestStore_ObserverSeesReplacedValueNotMutation(t *testing.T) {
	type snapshot struct{ Items []string }
	store := NewStore(snapshot{})

	var seen snapshot
	store.Subscribe(func(s snapshot) { seen = s })

	store.Set(snapshot{Items: []string{"x"}})

	// 快照整体替换，观察者拿到的是发布时的完整值
	if len(seen.Items) != 1 || seen.Items[0] != "x" {
		t.Errorf("期望观察者收到替换后的快照，实际=%+v", seen)
	}
}
