package httputil

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	if err := c.Set("https://example.com/a.png", imageSize{W: 40, H: 20}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got imageSize
	ok, err := c.Get("https://example.com/a.png", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}
	if got != (imageSize{W: 40, H: 20}) {
		t.Errorf("Get() = %+v", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var got imageSize
	ok, err := c.Get("missing", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var res string
	ok, err := c.Get("key", &res)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}

	time.Sleep(20 * time.Millisecond)

	ok, err = c.Get("key", &res)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if ok {
		t.Error("Get() returned true for expired key")
	}
}

func TestCache_KeyStability(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	if c.keyPath("test") != c.keyPath("test") {
		t.Error("path should be deterministic")
	}
	if c.keyPath("test") == c.keyPath("other") {
		t.Error("different keys should produce different paths")
	}
}

func TestCache_Namespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	img := c.Namespace("img:")
	if err := img.Set("logo", "namespaced"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := c.Set("logo", "plain"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got string
	if ok, err := img.Get("logo", &got); !ok || err != nil || got != "namespaced" {
		t.Errorf("img.Get() = %v, %v, %q", ok, err, got)
	}
	if ok, err := c.Get("logo", &got); !ok || err != nil || got != "plain" {
		t.Errorf("Get() = %v, %v, %q", ok, err, got)
	}

	nested := img.Namespace("v2:")
	if found, _ := nested.Get("logo", &got); found {
		t.Error("nested namespace should not see the parent's entry")
	}
	if nested.Dir() != c.Dir() || nested.TTL() != c.TTL() {
		t.Error("namespace should keep dir and ttl")
	}
}
