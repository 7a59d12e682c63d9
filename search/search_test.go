package search

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/eringen/docsite/content"
)

func TestTokenizeLatin(t *testing.T) {
	got := Tokenize("Hello Web3, deploy-it fast!")
	want := []string{"hello", "web3", "deploy", "it", "fast"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeCJKBigrams(t *testing.T) {
	got := Tokenize("智能合约")
	want := []string{"智能", "能合", "合约"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeLoneCJKRune(t *testing.T) {
	got := Tokenize("好 world")
	want := []string{"好", "world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeMixed(t *testing.T) {
	got := Tokenize("Solidity极简入门")
	want := []string{"solidity", "极简", "简入", "入门"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestEditDistanceWithin(t *testing.T) {
	tests := []struct {
		a, b   string
		max    int
		want   int
		wantOK bool
	}{
		{"hello", "hello", 2, 0, true},
		{"hello", "hallo", 2, 1, true},
		{"hello", "world", 2, 0, false},
		{"abc", "abcdef", 2, 0, false}, // length gap exceeds budget
		{"合约", "合同", 1, 1, true},
		{"", "ab", 2, 2, true},
	}
	for _, tt := range tests {
		got, ok := editDistanceWithin(tt.a, tt.b, tt.max)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("editDistanceWithin(%q, %q, %d) = %d, %v; want %d, %v",
				tt.a, tt.b, tt.max, got, ok, tt.want, tt.wantOK)
		}
	}
}

func testPages() []content.Page {
	return []content.Page{
		{
			Route: "/", Title: "首页", Section: "",
			Text: "欢迎来到教程站点",
		},
		{
			Route: "/solidity/01_HelloWeb3/", Title: "Hello Web3", Section: "solidity",
			Headings: []content.Heading{{Level: 2, Text: "部署合约"}},
			Text:     "第一个智能合约 deploy with ethers",
			Keywords: []string{"solidity", "remix"},
		},
		{
			Route: "/ethers/01_HelloEthers/", Title: "Hello Ethers", Section: "ethers",
			Text: "用 ethers 读取链上数据 contract",
		},
	}
}

func defaultBoosts() map[string]float64 {
	return map[string]float64{FieldTitle: 4, FieldHeading: 2, FieldText: 1}
}

func TestSearchExact(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	got := ix.Search("web3", 10)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(got), got)
	}
	if got[0].Route != "/solidity/01_HelloWeb3/" {
		t.Errorf("Route = %q", got[0].Route)
	}
}

func TestSearchTitleBoostOrdersFirst(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	// "ethers" is in one title and in another page's body; the title hit
	// must outrank the body-only hit.
	got := ix.Search("ethers", 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	if got[0].Route != "/ethers/01_HelloEthers/" {
		t.Errorf("Route = %q, want the title match first", got[0].Route)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("expected strict score ordering: %+v", got)
	}
}

func TestSearchTieBreaksByRoute(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	// "hello" appears in two titles with the same count; the tie breaks on
	// route order.
	got := ix.Search("hello", 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	if got[0].Route != "/ethers/01_HelloEthers/" || got[1].Route != "/solidity/01_HelloWeb3/" {
		t.Errorf("routes = %q, %q", got[0].Route, got[1].Route)
	}
}

func TestSearchCJKQuery(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	got := ix.Search("智能合约", 10)
	if len(got) != 1 || got[0].Route != "/solidity/01_HelloWeb3/" {
		t.Fatalf("results = %+v", got)
	}
}

func TestSearchKeywords(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	got := ix.Search("remix", 10)
	if len(got) != 1 || got[0].Route != "/solidity/01_HelloWeb3/" {
		t.Fatalf("results = %+v", got)
	}
}

func TestSearchPrefix(t *testing.T) {
	exact := Build(testPages(), Options{Boosts: defaultBoosts()})
	if got := exact.Search("eth", 10); len(got) != 0 {
		t.Fatalf("exact index matched a prefix: %+v", got)
	}
	prefixed := Build(testPages(), Options{Prefix: true, Boosts: defaultBoosts()})
	got := prefixed.Search("eth", 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	if got[0].Route != "/ethers/01_HelloEthers/" {
		t.Errorf("Route = %q, want the title match first", got[0].Route)
	}
}

func TestSearchFuzzy(t *testing.T) {
	exact := Build(testPages(), Options{Boosts: defaultBoosts()})
	if got := exact.Search("ethars", 10); len(got) != 0 {
		t.Fatalf("exact index matched a typo: %+v", got)
	}
	fuzzy := Build(testPages(), Options{Fuzziness: 0.2, Boosts: defaultBoosts()})
	got := fuzzy.Search("ethars", 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	if got[0].Route != "/ethers/01_HelloEthers/" {
		t.Errorf("Route = %q, want the title match first", got[0].Route)
	}
	if got[0].Score <= 0 {
		t.Errorf("fuzzy score must be positive, got %v", got[0].Score)
	}
}

func TestSearchLimit(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	got := ix.Search("hello", 1)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	ix := Build(testPages(), Options{Boosts: defaultBoosts()})
	if got := ix.Search("   ", 10); got != nil {
		t.Errorf("empty query returned %+v", got)
	}
}

func TestIndexJSONRoundTrip(t *testing.T) {
	opts := Options{Fuzziness: 0.2, Prefix: true, Boosts: defaultBoosts()}
	ix := Build(testPages(), opts)
	data, err := json.Marshal(ix)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Index
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Len() != ix.Len() {
		t.Fatalf("Len = %d, want %d", restored.Len(), ix.Len())
	}
	want := ix.Search("智能合约", 5)
	got := restored.Search("智能合约", 5)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restored search = %+v, want %+v", got, want)
	}
}
