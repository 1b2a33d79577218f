package authstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InitialState(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Authenticated())
}

// TestStore_LoginThenLogoutNotifiesTwice is the core observable contract:
// one login followed by one logout produces exactly two notifications, in
// order, with the new value each time.
func TestStore_LoginThenLogoutNotifiesTwice(t *testing.T) {
	s := NewStore()

	var got []bool
	s.Subscribe(func(authenticated bool) { got = append(got, authenticated) })

	s.Login()
	s.Logout()

	require.Equal(t, []bool{true, false}, got)
}

func TestStore_EqualValueDoesNotNotify(t *testing.T) {
	s := NewStore()

	calls := 0
	s.Subscribe(func(bool) { calls++ })

	s.Logout()        // already false
	s.Hydrate(false)  // still false
	s.Login()         // change
	s.Login()         // already true
	s.Hydrate(true)   // still true

	assert.Equal(t, 1, calls)
	assert.True(t, s.Authenticated())
}

func TestStore_HydrateChangesState(t *testing.T) {
	s := NewStore()

	var got []bool
	s.Subscribe(func(authenticated bool) { got = append(got, authenticated) })

	s.Hydrate(true)

	assert.True(t, s.Authenticated())
	assert.Equal(t, []bool{true}, got)
}

func TestStore_NotificationOrderFollowsRegistration(t *testing.T) {
	s := NewStore()

	var order []int
	s.Subscribe(func(bool) { order = append(order, 1) })
	s.Subscribe(func(bool) { order = append(order, 2) })
	s.Subscribe(func(bool) { order = append(order, 3) })

	s.Login()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestStore_CancelStopsNotifications(t *testing.T) {
	s := NewStore()

	calls := 0
	cancel := s.Subscribe(func(bool) { calls++ })

	s.Login()
	cancel()
	cancel() // second cancel is a no-op
	s.Logout()

	assert.Equal(t, 1, calls)
}

func TestStore_SubscriberMaySubscribeDuringNotify(t *testing.T) {
	s := NewStore()

	lateCalls := 0
	s.Subscribe(func(authenticated bool) {
		if authenticated {
			s.Subscribe(func(bool) { lateCalls++ })
		}
	})

	s.Login()  // registers the late subscriber, which must not fire for this change
	s.Logout() // now it fires

	assert.Equal(t, 1, lateCalls)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	s.Subscribe(func(bool) {})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Login()
			} else {
				s.Logout()
			}
			_ = s.Authenticated()
		}(i)
	}
	wg.Wait()
}
