package session

import (
	"testing"
	"time"
)

func TestStoreTTLs(t *testing.T) {
	if sessionTTL != 30*24*time.Hour {
		t.Fatalf("session ttl = %v, want 30 days", sessionTTL)
	}
	if flashTTL != 5*time.Minute {
		t.Fatalf("flash ttl = %v, want 5 minutes", flashTTL)
	}
}
