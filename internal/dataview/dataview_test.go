package dataview

import (
	"errors"
	"strings"
	"testing"

	"github.com/Dan9191/credit-dashboard/internal/models"
)

func loans(t *testing.T) Table {
	t.Helper()
	tbl, err := FromRecords([][]string{
		{"objetivo_credito", "importe_solicitado", "duracion_credito", "estado_credito_N", "personas_a_cargo", "antiguedad_cliente"},
		{"car", "1000", "12", "0", "1", "menor_2y"},
		{"car", "3000", "24", "1", "2", "2y_a_4y"},
		{"house", "9000", "48", "0", "0", "mayor_4y"},
		{"education", "2000", "12", "1", "1", "menor_2y"},
		{"car", "5000", "36", "0", "3", "mayor_4y"},
	}, WithTextColumns("estado_credito_N"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tbl
}

func column(t *testing.T, tbl Table, name string) []string {
	t.Helper()
	vals, _, err := tbl.categories(name)
	if err != nil {
		t.Fatalf("column %s: %v", name, err)
	}
	return vals
}

func TestFilterByCategories(t *testing.T) {
	tbl := loans(t)
	cases := []struct {
		name     string
		column   string
		selected Set
		want     int
	}{
		{"single", "objetivo_credito", NewSet("car"), 3},
		{"several", "objetivo_credito", NewSet("car", "house"), 4},
		{"unknown value matches nothing", "objetivo_credito", NewSet("boat"), 0},
		{"mixed known and unknown", "objetivo_credito", NewSet("boat", "house"), 1},
		{"empty selection", "objetivo_credito", NewSet(), 0},
		{"nil selection", "objetivo_credito", nil, 0},
		{"integer column", "personas_a_cargo", NewSet("1"), 2},
		{"code column", "estado_credito_N", NewSet("1"), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FilterByCategories(tbl, tc.column, tc.selected)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if got.Rows() != tc.want {
				t.Fatalf("rows = %d, want %d", got.Rows(), tc.want)
			}
			if got.Rows() > tbl.Rows() {
				t.Fatalf("filtered view larger than source: %d > %d", got.Rows(), tbl.Rows())
			}
			for _, v := range column(t, got, tc.column) {
				if !tc.selected.Has(v) {
					t.Fatalf("row value %q not in selection", v)
				}
			}
		})
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	tbl := loans(t)
	before := strings.Join(column(t, tbl, "objetivo_credito"), ",")
	if _, err := FilterByCategories(tbl, "objetivo_credito", NewSet("house")); err != nil {
		t.Fatalf("filter: %v", err)
	}
	if _, err := FilterByCategories(tbl, "objetivo_credito", NewSet()); err != nil {
		t.Fatalf("filter: %v", err)
	}
	after := strings.Join(column(t, tbl, "objetivo_credito"), ",")
	if tbl.Rows() != 5 || before != after {
		t.Fatalf("source table changed: %q -> %q", before, after)
	}
}

func TestFilterAll(t *testing.T) {
	tbl := loans(t)
	got, err := FilterAll(tbl,
		CategoryFilter{Column: "objetivo_credito", Values: NewSet("car", "education")},
		CategoryFilter{Column: "estado_credito_N", Values: NewSet("0")},
	)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if got.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", got.Rows())
	}
}

func TestMissingColumn(t *testing.T) {
	tbl := loans(t)
	checks := map[string]func() error{
		"filter":       func() error { _, err := FilterByCategories(tbl, "nope", NewSet("x")); return err },
		"filter empty": func() error { _, err := FilterByCategories(tbl, "nope", NewSet()); return err },
		"counts":       func() error { _, err := ValueCounts(tbl, "nope"); return err },
		"group": func() error {
			_, err := GroupMeanOrdered(tbl, "nope", "importe_solicitado", nil)
			return err
		},
		"corr":      func() error { _, err := CorrelationMatrix(tbl, []string{"importe_solicitado", "nope"}); return err },
		"histogram": func() error { _, err := Histogram(tbl, "nope", 10); return err },
		"box":       func() error { _, err := BoxStats(tbl, "objetivo_credito", "nope"); return err },
	}
	for name, fn := range checks {
		if err := fn(); !errors.Is(err, ErrColumnNotFound) {
			t.Fatalf("%s: err = %v, want ErrColumnNotFound", name, err)
		}
	}
}

func TestValueCounts(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"objetivo_credito"},
		{"car"},
		{"car"},
		{"house"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := ValueCounts(tbl, "objetivo_credito")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	want := []models.ValueCount{{Value: "car", Count: 2}, {Value: "house", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestValueCountsSumAndOrder(t *testing.T) {
	tbl := loans(t)
	got, err := ValueCounts(tbl, "personas_a_cargo")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	sum := 0
	for i, vc := range got {
		sum += vc.Count
		if i > 0 {
			prev := got[i-1]
			if prev.Count < vc.Count || (prev.Count == vc.Count && prev.Value > vc.Value) {
				t.Fatalf("not ordered: %+v", got)
			}
		}
	}
	if sum != tbl.Rows() {
		t.Fatalf("counts sum to %d, want %d", sum, tbl.Rows())
	}
	if got[0].Value != "1" || got[0].Count != 2 {
		t.Fatalf("first = %+v, want 1:2", got[0])
	}
}

func TestGroupMeanOrdered(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"antiguedad_cliente", "importe_solicitado"},
		{">4y", "100"},
		{"<2y", "50"},
		{"2y–4y", "75"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := GroupMeanOrdered(tbl, "antiguedad_cliente", "importe_solicitado", []string{"<2y", "2y–4y", ">4y"})
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	want := []models.GroupMean{
		{Group: "<2y", Mean: 50, Count: 1},
		{Group: "2y–4y", Mean: 75, Count: 1},
		{Group: ">4y", Mean: 100, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGroupMeanOrderedUnlistedAndAbsent(t *testing.T) {
	tbl := loans(t)
	got, err := GroupMeanOrdered(tbl, "objetivo_credito", "importe_solicitado", []string{"house", "boat"})
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	var order []string
	for _, g := range got {
		order = append(order, g.Group)
	}
	if strings.Join(order, ",") != "house,car,education" {
		t.Fatalf("order = %v, want house,car,education", order)
	}
	if got[1].Mean != 3000 || got[1].Count != 3 {
		t.Fatalf("car mean = %+v, want 3000 over 3 rows", got[1])
	}
}

func TestCorrelationMatrix(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"a", "b", "c", "k"},
		{"1", "2", "4", "5"},
		{"2", "4.1", "3", "5"},
		{"3", "5.9", "2", "5"},
		{"4", "8.5", "1", "5"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cols := []string{"a", "b", "c", "k"}
	m, err := CorrelationMatrix(tbl, cols)
	if err != nil {
		t.Fatalf("corr: %v", err)
	}
	for i := range cols {
		for j := range cols {
			if m.Values[i][j].Valid != m.Values[j][i].Valid || !m.Values[i][j].Decimal.Equal(m.Values[j][i].Decimal) {
				t.Fatalf("not symmetric at %d,%d", i, j)
			}
		}
	}
	for i, c := range cols[:3] {
		if v := m.Values[i][i]; !v.Valid || v.Decimal.InexactFloat64() != 1 {
			t.Fatalf("diagonal %s = %v, want 1", c, v)
		}
	}
	if v, _ := m.At("a", "c"); !v.Valid || v.Decimal.InexactFloat64() != -1 {
		t.Fatalf("corr(a,c) = %v, want -1", v)
	}
	v, _ := m.At("a", "b")
	if !v.Valid || v.Decimal.Exponent() < -2 {
		t.Fatalf("corr(a,b) = %v, want a value rounded to 2 decimals", v)
	}
	if f := v.Decimal.InexactFloat64(); f < 0.99 || f > 1 {
		t.Fatalf("corr(a,b) = %v, want close to 1", f)
	}
	if v, _ := m.At("k", "k"); v.Valid {
		t.Fatalf("constant column diagonal = %v, want undefined", v)
	}
	if v, _ := m.At("a", "k"); v.Valid {
		t.Fatalf("corr with constant column = %v, want undefined", v)
	}
}

func TestCorrelationMatrixTextColumn(t *testing.T) {
	tbl := loans(t)
	_, err := CorrelationMatrix(tbl, []string{"importe_solicitado", "objetivo_credito"})
	if !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("err = %v, want ErrNotNumeric", err)
	}
}

func TestHistogram(t *testing.T) {
	tbl := loans(t)
	bins, err := Histogram(tbl, "importe_solicitado", 4)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(bins) != 4 {
		t.Fatalf("bins = %d, want 4", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != tbl.Rows() {
		t.Fatalf("bin counts sum to %d, want %d", total, tbl.Rows())
	}
	if bins[0].Lower != 1000 || bins[3].Upper != 9000 {
		t.Fatalf("range = [%v, %v], want [1000, 9000]", bins[0].Lower, bins[3].Upper)
	}
	// 9000 closes the last bin
	if bins[0].Count != 2 || bins[1].Count != 1 || bins[2].Count != 1 || bins[3].Count != 1 {
		t.Fatalf("counts = %+v", bins)
	}

	if _, err := Histogram(tbl, "importe_solicitado", 0); err == nil {
		t.Fatalf("expected error for zero bins")
	}
}

func TestHistogramConstantAndEmpty(t *testing.T) {
	tbl := loans(t)
	one, _ := FilterByCategories(tbl, "objetivo_credito", NewSet("house"))
	bins, err := Histogram(one, "importe_solicitado", 10)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(bins) != 1 || bins[0].Count != 1 {
		t.Fatalf("constant column bins = %+v", bins)
	}
	none, _ := FilterByCategories(tbl, "objetivo_credito", NewSet())
	bins, err = Histogram(none, "importe_solicitado", 10)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(bins) != 0 {
		t.Fatalf("empty table bins = %+v", bins)
	}
}

func TestCrossCounts(t *testing.T) {
	tbl := loans(t)
	got, err := CrossCounts(tbl, "objetivo_credito", "estado_credito_N")
	if err != nil {
		t.Fatalf("cross: %v", err)
	}
	want := []models.StackCount{
		{X: "car", Group: "0", Count: 2},
		{X: "car", Group: "1", Count: 1},
		{X: "house", Group: "0", Count: 1},
		{X: "education", Group: "1", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBoxStats(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"g", "v"},
		{"a", "1"}, {"a", "2"}, {"a", "3"}, {"a", "4"}, {"a", "5"}, {"a", "100"},
		{"b", "7"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := BoxStats(tbl, "g", "v")
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	if len(got) != 2 || got[0].Group != "a" || got[1].Group != "b" {
		t.Fatalf("groups = %+v", got)
	}
	a := got[0]
	if !(a.LowerWhisker <= a.Q1 && a.Q1 <= a.Median && a.Median <= a.Q3 && a.Q3 <= a.UpperWhisker) {
		t.Fatalf("box not ordered: %+v", a)
	}
	if len(a.Outliers) != 1 || a.Outliers[0] != 100 {
		t.Fatalf("outliers = %v, want [100]", a.Outliers)
	}
	if a.UpperWhisker != 5 || a.LowerWhisker != 1 {
		t.Fatalf("whiskers = [%v, %v], want [1, 5]", a.LowerWhisker, a.UpperWhisker)
	}
	if a.Q1 != 2.25 || a.Median != 3.5 || a.Q3 != 4.75 {
		t.Fatalf("quartiles = %v/%v/%v, want 2.25/3.5/4.75", a.Q1, a.Median, a.Q3)
	}
	b := got[1]
	if b.Count != 1 || b.Median != 7 || b.LowerWhisker != 7 || b.UpperWhisker != 7 {
		t.Fatalf("single value box = %+v", b)
	}
}

func TestBoxStatsInterpolatesQuartiles(t *testing.T) {
	tests := []struct {
		name           string
		values         []string
		q1, median, q3 float64
	}{
		{"even count", []string{"4", "2", "1", "3"}, 1.75, 2.5, 3.25},
		{"odd count", []string{"5", "1", "3", "2", "4"}, 2, 3, 4},
		{"pair", []string{"10", "20"}, 12.5, 15, 17.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := [][]string{{"g", "v"}}
			for _, v := range tt.values {
				records = append(records, []string{"a", v})
			}
			tbl, err := FromRecords(records)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			got, err := BoxStats(tbl, "g", "v")
			if err != nil {
				t.Fatalf("box: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("groups = %+v", got)
			}
			b := got[0]
			if b.Q1 != tt.q1 || b.Median != tt.median || b.Q3 != tt.q3 {
				t.Fatalf("quartiles = %v/%v/%v, want %v/%v/%v", b.Q1, b.Median, b.Q3, tt.q1, tt.median, tt.q3)
			}
		})
	}
}

func TestPointsAndUnique(t *testing.T) {
	tbl := loans(t)
	pts, err := Points(tbl, "duracion_credito", "importe_solicitado", "estado_credito_N")
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	if len(pts) != 5 || pts[2] != (models.Point{X: 48, Y: 9000, Group: "0"}) {
		t.Fatalf("points = %+v", pts)
	}
	u, err := Unique(tbl, "objetivo_credito")
	if err != nil {
		t.Fatalf("unique: %v", err)
	}
	if strings.Join(u, ",") != "car,house,education" {
		t.Fatalf("unique = %v", u)
	}
}
