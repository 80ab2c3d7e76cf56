package sliceutil

import (
	"reflect"
	"strconv"
	"testing"
)

type seedRow struct {
	ID   int64
	Name string
}

func rowKey(r seedRow) int64 { return r.ID }

func TestDeduplicate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		rows []seedRow
		want []seedRow
	}{
		{
			name: "no duplicates",
			rows: []seedRow{{1, "Tsinghua"}, {2, "Fudan"}, {3, "Jinan"}},
			want: []seedRow{{1, "Tsinghua"}, {2, "Fudan"}, {3, "Jinan"}},
		},
		{
			name: "first occurrence wins",
			rows: []seedRow{{1, "Tsinghua"}, {2, "Fudan"}, {1, "Tsinghua (dup)"}, {3, "Jinan"}},
			want: []seedRow{{1, "Tsinghua"}, {2, "Fudan"}, {3, "Jinan"}},
		},
		{
			name: "all the same key",
			rows: []seedRow{{7, "a"}, {7, "b"}, {7, "c"}},
			want: []seedRow{{7, "a"}},
		},
		{
			name: "order preserved across duplicates",
			rows: []seedRow{{3, "C"}, {1, "A"}, {2, "B"}, {3, "C2"}, {1, "A2"}},
			want: []seedRow{{3, "C"}, {1, "A"}, {2, "B"}},
		},
		{
			name: "empty input",
			rows: []seedRow{},
			want: []seedRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Deduplicate(tt.rows, rowKey)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Deduplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeduplicateStringKeys(t *testing.T) {
	t.Parallel()
	ids := []string{"visa-x1", "hsk-levels", "visa-x1", "csc-deadline"}

	got := Deduplicate(ids, func(s string) string { return s })
	want := []string{"visa-x1", "hsk-levels", "csc-deadline"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deduplicate() = %v, want %v", got, want)
	}
}

func BenchmarkDeduplicate(b *testing.B) {
	rows := make([]seedRow, 1000)
	for i := range rows {
		rows[i] = seedRow{ID: int64(i % 100), Name: strconv.Itoa(i)}
	}

	b.ResetTimer()
	for range b.N {
		_ = Deduplicate(rows, rowKey)
	}
}
