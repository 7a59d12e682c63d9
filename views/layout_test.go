package views

import (
	"context"
	"strings"
	"testing"
)

func TestRenderHeadTag(t *testing.T) {
	tests := []struct {
		tag  HeadTag
		want string
	}{
		{
			HeadTag{Tag: "meta", Attrs: map[string]string{"property": "og:site_name", "content": "WTF学院"}},
			`<meta content="WTF学院" property="og:site_name">`,
		},
		{
			HeadTag{Tag: "script", Content: "console.log(1)"},
			`<script>console.log(1)</script>`,
		},
		{
			HeadTag{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/public/logo.svg"}},
			`<link href="/public/logo.svg" rel="icon">`,
		},
	}
	for _, tt := range tests {
		if got := RenderHeadTag(tt.tag); got != tt.want {
			t.Errorf("RenderHeadTag(%+v) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestRenderHeadTagEscapes(t *testing.T) {
	got := RenderHeadTag(HeadTag{Tag: "meta", Attrs: map[string]string{"content": `a"b<c`}})
	if strings.Contains(got, `a"b<c`) {
		t.Errorf("attribute not escaped: %q", got)
	}
}

func testSite() Site {
	return Site{
		Title:       "测试站",
		Description: "教程",
		Lang:        "zh-CN",
		Base:        "/",
		URL:         "https://example.com",
		Nav: []Link{
			{Text: "Solidity", Link: "/solidity/01_HelloWeb3/", Active: true},
			{Text: "Ethers", Link: "/ethers/01_HelloEthers/"},
		},
		Sidebar: []SidebarGroup{
			{Text: "入门", Items: []SidebarItem{
				{Text: "第1讲", Link: "/solidity/01_HelloWeb3/", Active: true},
			}},
		},
		Head: []HeadTag{
			{Tag: "meta", Attrs: map[string]string{"property": "og:site_name", "content": "测试站"}},
		},
		Search:    SearchUI{ButtonText: "搜索文档", Placeholder: "搜索", NoResultsText: "无结果"},
		FooterMsg: "Released under MIT",
	}
}

func TestLayoutRender(t *testing.T) {
	page := Page{
		Title:       "第1讲：Hello Web3",
		Description: "部署第一个合约",
		Route:       "/solidity/01_HelloWeb3/",
		HTML:        "<h1>第1讲：Hello Web3</h1><p>正文</p>",
		Outline: []OutlineItem{
			{Level: 2, Text: "部署", Anchor: "部署"},
		},
		UpdatedAt: "2026-03-01",
		EditURL:   "https://github.com/example/site/edit/main/docs/solidity/01_HelloWeb3.md",
		EditText:  "在 GitHub 上编辑",
		Next:      &Link{Text: "第2讲", Link: "/solidity/02_ValueTypes/"},
	}

	var b strings.Builder
	if err := Layout(testSite(), page).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := b.String()

	for _, want := range []string{
		`lang="zh-CN"`,
		"<title>第1讲：Hello Web3 | 测试站</title>",
		`property="og:site_name"`,
		"<p>正文</p>",
		`href="/solidity/02_ValueTypes/"`,
		"在 GitHub 上编辑",
		"2026-03-01",
		"搜索文档",
		"Released under MIT",
		`href="#部署"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	// Active nav entry is marked, the inactive one is not.
	if !strings.Contains(html, `class="nav-link active"`) {
		t.Error("active nav entry not marked")
	}
}

func TestNotFoundRender(t *testing.T) {
	var b strings.Builder
	if err := NotFound(testSite()).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(b.String(), "404") {
		t.Error("404 page missing status code")
	}
}
