package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatal(err)
	}

	c.Operation("add", "ok")
	c.Operation("add", "ok")
	c.Operation("add", "invalid")
	c.Persist("save", "ok", 20*time.Millisecond)
	c.Items(3)

	if have, want := testutil.ToFloat64(c.operations.WithLabelValues("add", "ok")), 2.0; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := testutil.ToFloat64(c.operations.WithLabelValues("add", "invalid")), 1.0; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := testutil.ToFloat64(c.items), 3.0; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := testutil.CollectAndCount(c.persist), 1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}

	// registering twice fails
	if _, err = New(reg); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatal(err)
	}
	c.Items(2)

	path := filepath.Join(t.TempDir(), "nanoinv.prom")
	if err = WriteTextfile(path, reg); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "nanoinv_items 2") {
		t.Errorf("expected items gauge in output:\n%s", b)
	}
}
