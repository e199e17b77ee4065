package formdata_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/formdata"
)

func TestWith_DoesNotMutateReceiver(t *testing.T) {
	before, err := formdata.New(map[string]any{"name": "Acme"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	after, err := before.With("city", "Berlin")
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if _, ok := before.Get("city"); ok {
		t.Fatalf("expected previous record to stay untouched")
	}
	if got := after.String("city"); got != "Berlin" {
		t.Fatalf("expected city Berlin, got %q", got)
	}

	overwritten, err := after.With("name", "Globex")
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if got := after.String("name"); got != "Acme" {
		t.Fatalf("expected original name to remain, got %q", got)
	}
	if got := overwritten.String("name"); got != "Globex" {
		t.Fatalf("expected overwritten name, got %q", got)
	}
}

func TestWith_RejectsUnsupportedValues(t *testing.T) {
	var data formdata.FormData
	if _, err := data.With("tags", []string{"a"}); !errors.Is(err, formdata.ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
	if _, err := data.With("  ", "x"); !errors.Is(err, formdata.ErrEmptyField) {
		t.Fatalf("expected ErrEmptyField, got %v", err)
	}
}

func TestNormalize_WidensNumbers(t *testing.T) {
	cases := map[string]struct {
		in   any
		want any
	}{
		"int":          {in: 3, want: int64(3)},
		"uint8":        {in: uint8(7), want: int64(7)},
		"uint32 max":   {in: uint32(math.MaxUint32), want: int64(math.MaxUint32)},
		"uint64 limit": {in: uint64(math.MaxInt64), want: int64(math.MaxInt64)},
		"float32":      {in: float32(1.5), want: float64(1.5)},
		"bool":         {in: true, want: true},
		"nil":          {in: nil, want: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := formdata.Normalize(tc.in)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestNormalize_RejectsUnsignedOverflow(t *testing.T) {
	for _, value := range []any{uint64(math.MaxUint64), uint64(math.MaxInt64) + 1} {
		got, err := formdata.Normalize(value)
		if !errors.Is(err, formdata.ErrUnsupportedValue) {
			t.Fatalf("expected ErrUnsupportedValue for %v, got %#v (%v)", value, got, err)
		}
	}

	var data formdata.FormData
	if _, err := data.With("quantity", uint64(math.MaxUint64)); !errors.Is(err, formdata.ErrUnsupportedValue) {
		t.Fatalf("expected With to reject overflowing quantity, got %v", err)
	}
}

func TestNew_RejectsCollidingSeedKeys(t *testing.T) {
	_, err := formdata.New(map[string]any{" name": "Acme", "name": "Globex"})
	if !errors.Is(err, formdata.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}

	data, err := formdata.New(map[string]any{" name ": "Acme", "city": "Oslo"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := data.String("name"); got != "Acme" {
		t.Fatalf("expected trimmed key to be stored, got %q", got)
	}
}

func TestIsBlank(t *testing.T) {
	blank := []any{nil, "", "   ", "\t\n"}
	for _, value := range blank {
		if !formdata.IsBlank(value) {
			t.Fatalf("expected %#v to be blank", value)
		}
	}
	present := []any{"x", false, int64(0), 0.0}
	for _, value := range present {
		if formdata.IsBlank(value) {
			t.Fatalf("expected %#v to be present", value)
		}
	}
}

func TestSubsetAndChanged(t *testing.T) {
	data, err := formdata.New(map[string]any{"city": "Oslo", "notes": "", "name": "Acme"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	subset := data.Subset("city", "notes", "missing")
	if diff := cmp.Diff([]string{"city", "notes"}, subset.Keys()); diff != "" {
		t.Fatalf("subset keys mismatch (-want +got):\n%s", diff)
	}
	if subset.Has("notes") {
		t.Fatalf("expected blank notes to report absent")
	}

	next, _ := data.With("city", "Bergen")
	next, _ = next.With("country", "NO")
	if diff := cmp.Diff([]string{"city", "country"}, formdata.Changed(data, next)); diff != "" {
		t.Fatalf("changed mismatch (-want +got):\n%s", diff)
	}
	if data.Equal(next) {
		t.Fatalf("expected records to differ")
	}
}
