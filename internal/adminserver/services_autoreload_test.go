package adminserver

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldTriggerServiceReload(t *testing.T) {
	cases := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{name: "write", evt: fsnotify.Event{Name: "/etc/config/ddns", Op: fsnotify.Write}, want: true},
		{name: "create", evt: fsnotify.Event{Name: "/etc/config/ddns", Op: fsnotify.Create}, want: true},
		{name: "remove", evt: fsnotify.Event{Name: "/etc/config/ddns", Op: fsnotify.Remove}, want: true},
		{name: "hidden file", evt: fsnotify.Event{Name: "/etc/config/.ddns.swp", Op: fsnotify.Write}, want: false},
		{name: "empty name", evt: fsnotify.Event{Name: "  ", Op: fsnotify.Write}, want: false},
		{name: "no op bits", evt: fsnotify.Event{Name: "/etc/config/ddns"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shouldTriggerServiceReload(tc.evt); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
