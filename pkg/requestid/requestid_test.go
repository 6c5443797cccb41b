package requestid

import "testing"

func TestResolveHeaderKey(t *testing.T) {
	if got := ResolveHeaderKey(""); got != DefaultHeaderKey {
		t.Fatalf("empty key resolved to %q", got)
	}
	if got := ResolveHeaderKey("  "); got != DefaultHeaderKey {
		t.Fatalf("blank key resolved to %q", got)
	}
	if got := ResolveHeaderKey("X-Ddnsadmin-Request-Id"); got != "X-Ddnsadmin-Request-Id" {
		t.Fatalf("explicit key resolved to %q", got)
	}
}

func TestGen_ShapeAndUniqueness(t *testing.T) {
	a := Gen()
	b := Gen()
	if len(a) != 26 {
		t.Fatalf("id length=%d, want 26: %q", len(a), a)
	}
	for i := 0; i < len(a); i++ {
		if a[i] < '0' || a[i] > '9' {
			t.Fatalf("non-digit at %d in %q", i, a)
		}
	}
	if a == b {
		t.Fatalf("consecutive ids collided: %q", a)
	}
}
