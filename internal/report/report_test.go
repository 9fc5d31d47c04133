package report

import (
	"strings"
	"testing"
)

func TestAdd_BucketEdges(t *testing.T) {
	cases := []struct {
		age    int64
		bucket int
	}{
		{0, 0},
		{19, 0},
		{20, 1},
		{39, 1},
		{40, 1},
		{41, 2},
		{60, 2},
		{61, 3},
		{95, 3},
	}
	for _, tc := range cases {
		var d AgeDistribution
		d.Add(tc.age)
		for i := 0; i < 4; i++ {
			want := int64(0)
			if i == tc.bucket {
				want = 1
			}
			if d.counts[i] != want {
				t.Errorf("age %d: bucket %d count = %d, want %d", tc.age, i, d.counts[i], want)
			}
		}
	}
}

func TestPercent(t *testing.T) {
	var d AgeDistribution
	for _, age := range []int64{10, 25, 30, 50} {
		d.Add(age)
	}
	if d.Total() != 4 {
		t.Fatalf("total = %d, want 4", d.Total())
	}
	wants := [4]int64{25, 50, 25, 0}
	for i, want := range wants {
		if got := d.Percent(i); got != want {
			t.Errorf("Percent(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestPercent_Rounds(t *testing.T) {
	var d AgeDistribution
	d.Add(10)
	d.Add(10)
	d.Add(30)
	// 2/3 and 1/3 round to 67 and 33.
	if got := d.Percent(0); got != 67 {
		t.Errorf("Percent(0) = %d, want 67", got)
	}
	if got := d.Percent(1); got != 33 {
		t.Errorf("Percent(1) = %d, want 33", got)
	}
}

func TestPercent_Empty(t *testing.T) {
	var d AgeDistribution
	for i := 0; i < 4; i++ {
		if got := d.Percent(i); got != 0 {
			t.Errorf("Percent(%d) on empty = %d", i, got)
		}
	}
}

func TestAddValue(t *testing.T) {
	var d AgeDistribution
	d.AddValue(int64(25))
	d.AddValue(float64(45.9))
	d.AddValue("")        // missing age
	d.AddValue("unknown") // non-numeric age
	d.AddValue(nil)
	if d.Total() != 2 {
		t.Fatalf("total = %d, want 2", d.Total())
	}
	if d.Unknown() != 3 {
		t.Fatalf("unknown = %d, want 3", d.Unknown())
	}
	if d.counts[1] != 1 || d.counts[2] != 1 {
		t.Fatalf("counts = %v", d.counts)
	}
}

func TestTable(t *testing.T) {
	var d AgeDistribution
	d.Add(25)
	lines := d.Table()
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Age-Group") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "20 to 40") || !strings.HasSuffix(lines[2], "100") {
		t.Errorf("bucket line = %q", lines[2])
	}
}
