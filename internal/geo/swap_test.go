package geo

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// parses a JSON document the same way the loader does
func mustDoc(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode fixture: %v\n%s", err, s)
	}
	return v
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestSwapPolygon_Example(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[[[1,2],[3,4]]]}}]}`)

	out, st, err := SwapPolygon(doc, FirstRing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"features":[{"geometry":{"coordinates":[[[2,1],[4,3]]]}}]}`
	if got := mustJSON(t, out); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	if st.Features != 1 || st.Rings != 1 || st.Pairs != 2 {
		t.Fatalf("stats=%+v want 1 feature, 1 ring, 2 pairs", st)
	}
	if st.Bound.Min[0] != 2 || st.Bound.Min[1] != 1 || st.Bound.Max[0] != 4 || st.Bound.Max[1] != 3 {
		t.Fatalf("bound=%v want [2 1]-[4 3]", st.Bound)
	}
}

func TestSwapPolygon_IsInvolution(t *testing.T) {
	in := `{"type":"FeatureCollection","features":[` +
		`{"type":"Feature","properties":{"pop":12},"geometry":{"type":"Polygon","coordinates":[[[45.75,21.22],[45.76,21.23],[45.77,21.21],[45.75,21.22]]]}},` +
		`{"type":"Feature","properties":{"pop":7},"geometry":{"type":"Polygon","coordinates":[[[45.1,21.1],[45.2,21.2],[45.1,21.1]]]}}]}`
	doc := mustDoc(t, in)
	orig := mustJSON(t, doc)

	if _, _, err := SwapPolygon(doc, FirstRing); err != nil {
		t.Fatalf("first swap: %v", err)
	}
	if mustJSON(t, doc) == orig {
		t.Fatal("first swap did not change the document")
	}
	if _, _, err := SwapPolygon(doc, FirstRing); err != nil {
		t.Fatalf("second swap: %v", err)
	}
	if got := mustJSON(t, doc); got != orig {
		t.Fatalf("double swap is not identity:\n got %s\nwant %s", got, orig)
	}
}

func TestSwapPolygon_OnlyFirstRing(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[`+
		`[[1,2],[3,4],[1,2]],`+
		`[[10.125,20.5],[30,40],[10.125,20.5]],`+
		`[[5,6],[7,8],[5,6]]]}}]}`)

	out, st, err := SwapPolygon(doc, FirstRing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"features":[{"geometry":{"coordinates":[` +
		`[[2,1],[4,3],[2,1]],` +
		`[[10.125,20.5],[30,40],[10.125,20.5]],` +
		`[[5,6],[7,8],[5,6]]]}}]}`
	if got := mustJSON(t, out); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
	if st.Rings != 1 || st.Pairs != 3 {
		t.Fatalf("stats=%+v want 1 ring, 3 pairs", st)
	}
}

func TestSwapPolygon_AllRings(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[[[1,2]],[[3,4]],[[5,6]]]}}]}`)

	out, st, err := SwapPolygon(doc, AllRings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"features":[{"geometry":{"coordinates":[[[2,1]],[[4,3]],[[6,5]]]}}]}`
	if got := mustJSON(t, out); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	if st.Rings != 3 || st.Pairs != 3 {
		t.Fatalf("stats=%+v want 3 rings, 3 pairs", st)
	}
}

func TestSwapPolygon_PreservesTopLevelAndOrder(t *testing.T) {
	doc := mustDoc(t, `{"type":"FeatureCollection","name":"population","crs":{"type":"name"},"features":[`+
		`{"id":"a","geometry":{"coordinates":[[[1,2]]]}},`+
		`{"id":"b","geometry":{"coordinates":[[[3,4]]]}},`+
		`{"id":"c","geometry":{"coordinates":[[[5,6]]]}}]}`)

	out, _, err := SwapPolygon(doc, FirstRing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("output is %T want map", out)
	}
	keys := []string{"type", "name", "crs", "features"}
	for _, k := range keys {
		if _, ok := root[k]; !ok {
			t.Fatalf("top-level key %q dropped", k)
		}
	}
	if len(root) != len(keys) {
		t.Fatalf("top-level has %d keys want %d", len(root), len(keys))
	}
	if root["name"] != "population" {
		t.Fatalf("name=%v", root["name"])
	}

	var ids []string
	for _, f := range root["features"].([]any) {
		ids = append(ids, f.(map[string]any)["id"].(string))
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("feature order=%v want [a b c]", ids)
	}
}

func TestSwapPoint_Example(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[5,6]}}]}`)

	out, st, err := SwapPoint(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"geometry":{"coordinates":[6,5]}}]`
	if got := mustJSON(t, out); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	if st.Features != 1 || st.Pairs != 1 || st.Rings != 0 {
		t.Fatalf("stats=%+v", st)
	}
}

func TestSwapPoint_ReturnsFeaturesOnly(t *testing.T) {
	doc := mustDoc(t, `{"type":"FeatureCollection","features":[`+
		`{"properties":{"type_color":"glass"},"geometry":{"type":"Point","coordinates":[45.75,21.22]}},`+
		`{"properties":{"type_color":"clothing"},"geometry":{"type":"Point","coordinates":[45.76,21.23]}}]}`)

	out, _, err := SwapPoint(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len=%d want 2", len(out))
	}
	got := mustJSON(t, out)
	if !strings.HasPrefix(got, "[") {
		t.Fatalf("output is not an array: %s", got)
	}
	first := out[0].(map[string]any)
	if first["properties"].(map[string]any)["type_color"] != "glass" {
		t.Fatalf("feature order changed: %s", got)
	}
	if c := mustJSON(t, first["geometry"].(map[string]any)["coordinates"]); c != "[21.22,45.75]" {
		t.Fatalf("coordinates=%s want [21.22,45.75]", c)
	}
}

func TestSwap_Dispatch(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[5,6]}}]}`)
	out, _, err := Swap(doc, KindPoint, FirstRing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.([]any); !ok {
		t.Fatalf("point output is %T want []any", out)
	}

	if _, _, err := Swap(doc, Kind("line"), FirstRing); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestSwap_StructureErrors(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		doc  string
	}{
		{"top level array", KindPolygon, `[]`},
		{"missing features", KindPolygon, `{"type":"FeatureCollection"}`},
		{"features not array", KindPoint, `{"features":{}}`},
		{"feature not object", KindPoint, `{"features":[1]}`},
		{"missing geometry", KindPoint, `{"features":[{}]}`},
		{"null geometry", KindPolygon, `{"features":[{"geometry":null}]}`},
		{"missing coordinates", KindPoint, `{"features":[{"geometry":{}}]}`},
		{"no rings", KindPolygon, `{"features":[{"geometry":{"coordinates":[]}}]}`},
		{"ring not array", KindPolygon, `{"features":[{"geometry":{"coordinates":[5]}}]}`},
		{"polygon given point", KindPolygon, `{"features":[{"geometry":{"coordinates":[5,6]}}]}`},
		{"point given polygon", KindPoint, `{"features":[{"geometry":{"coordinates":[[[1,2]]]}}]}`},
		{"pair of three", KindPoint, `{"features":[{"geometry":{"coordinates":[1,2,3]}}]}`},
		{"pair of one", KindPolygon, `{"features":[{"geometry":{"coordinates":[[[1]]]}}]}`},
		{"string member", KindPoint, `{"features":[{"geometry":{"coordinates":["1",2]}}]}`},
		{"null member", KindPoint, `{"features":[{"geometry":{"coordinates":[1,null]}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Swap(mustDoc(t, tc.doc), tc.kind, FirstRing)
			if !errors.Is(err, ErrStructure) {
				t.Fatalf("err=%v want ErrStructure", err)
			}
		})
	}
}

func TestSwap_ErrorNamesFeature(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[1,2]}},{"geometry":{"coordinates":[1]}}]}`)
	_, _, err := SwapPoint(doc)
	if err == nil || !strings.Contains(err.Error(), "feature 1") {
		t.Fatalf("err=%v want mention of feature 1", err)
	}
}

func TestSwapPair(t *testing.T) {
	pair := []any{json.Number("1.5"), json.Number("-2")}
	if err := SwapPair(pair); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair[0] != json.Number("-2") || pair[1] != json.Number("1.5") {
		t.Fatalf("pair=%v want [-2 1.5]", pair)
	}

	bad := []any{json.Number("1"), "x"}
	if err := SwapPair(bad); !errors.Is(err, ErrStructure) {
		t.Fatalf("err=%v want ErrStructure", err)
	}
	if bad[0] != json.Number("1") || bad[1] != "x" {
		t.Fatalf("rejected pair was mutated: %v", bad)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"polygon": KindPolygon, "Point": KindPoint, " POLYGON ": KindPolygon} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("multipolygon"); err == nil {
		t.Error("expected error for unsupported kind")
	}
}

func TestStats_LonLat(t *testing.T) {
	doc := mustDoc(t, `{"features":[{"geometry":{"coordinates":[45.75,21.22]}}]}`)
	_, st, err := SwapPoint(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.LonLat() {
		t.Fatalf("bound %v should fit lon/lat", st.Bound)
	}

	doc = mustDoc(t, `{"features":[{"geometry":{"coordinates":[120.5,45.75]}}]}`)
	_, st, err = SwapPoint(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LonLat() {
		t.Fatalf("bound %v has latitude 120.5, should not fit lon/lat", st.Bound)
	}

	if !(Stats{}).LonLat() {
		t.Fatal("empty stats should report true")
	}
}
