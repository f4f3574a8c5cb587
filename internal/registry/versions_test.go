package registry

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docsite/docs"
)

func TestLoadVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"versions.json": &fstest.MapFile{Data: []byte(`["2.0.0", "1.1.0", "1.0.0"]`)},
	}

	labels, err := LoadVersions(fsys)
	if err != nil {
		t.Fatalf("LoadVersions: %v", err)
	}
	want := []string{"2.0.0", "1.1.0", "1.0.0"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %#v", len(want), labels)
	}
	for i, label := range want {
		if labels[i] != label {
			t.Fatalf("label %d = %q, want %q", i, labels[i], label)
		}
	}
}

func TestLoadVersionsMissingFile(t *testing.T) {
	labels, err := LoadVersions(fstest.MapFS{})
	if err != nil {
		t.Fatalf("LoadVersions: %v", err)
	}
	if labels != nil {
		t.Fatalf("expected nil labels for missing manifest, got %#v", labels)
	}
}

func TestLoadVersionsRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "not an array", data: `{"versions": ["1.0.0"]}`},
		{name: "non string entry", data: `["1.0.0", 2]`},
		{name: "duplicate labels", data: `["1.0.0", "1.0.0"]`},
		{name: "empty label", data: `["1.0.0", ""]`},
		{name: "malformed json", data: `["1.0.0"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"versions.json": &fstest.MapFile{Data: []byte(tc.data)},
			}
			if _, err := LoadVersions(fsys); !errors.Is(err, ErrVersionsFileInvalid) {
				t.Fatalf("expected ErrVersionsFileInvalid, got %v", err)
			}
		})
	}
}

func TestBuildVersionInfos(t *testing.T) {
	infos := BuildVersionInfos([]string{"2.0.0", "1.0.0"})

	if len(infos) != 3 {
		t.Fatalf("expected 3 infos, got %d", len(infos))
	}
	if !infos[0].Current || infos[0].Label != docs.CurrentVersion || infos[0].Position != 0 {
		t.Fatalf("unexpected current info %#v", infos[0])
	}
	if infos[1].Label != "2.0.0" || infos[1].Position != 1 || infos[1].Current {
		t.Fatalf("unexpected snapshot info %#v", infos[1])
	}
	if infos[2].Label != "1.0.0" || infos[2].Position != 2 {
		t.Fatalf("unexpected snapshot info %#v", infos[2])
	}
}

func TestLoadSidebar(t *testing.T) {
	fsys := fstest.MapFS{
		"sidebars.json": &fstest.MapFile{Data: []byte(`{
			"docs": {
				"Getting Started": ["overview", "install"],
				"Guides": ["advanced"]
			}
		}`)},
		"version-1.0.0-sidebars.json": &fstest.MapFile{Data: []byte(`{
			"docs": {"Getting Started": ["version-1.0.0-overview"]}
		}`)},
	}

	sidebar, err := LoadSidebar(fsys, docs.CurrentVersion)
	if err != nil {
		t.Fatalf("LoadSidebar: %v", err)
	}
	if len(sidebar["docs"]["Getting Started"]) != 2 {
		t.Fatalf("unexpected sidebar %#v", sidebar)
	}

	versioned, err := LoadSidebar(fsys, "1.0.0")
	if err != nil {
		t.Fatalf("LoadSidebar versioned: %v", err)
	}
	if versioned["docs"]["Getting Started"][0] != "version-1.0.0-overview" {
		t.Fatalf("unexpected versioned sidebar %#v", versioned)
	}
}

func TestLoadSidebarMissingFile(t *testing.T) {
	sidebar, err := LoadSidebar(fstest.MapFS{}, docs.CurrentVersion)
	if err != nil {
		t.Fatalf("LoadSidebar: %v", err)
	}
	if sidebar != nil {
		t.Fatalf("expected nil sidebar for missing file, got %#v", sidebar)
	}
}

func TestLoadSidebarRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "categories not object", data: `{"docs": ["overview"]}`},
		{name: "entries not array", data: `{"docs": {"Getting Started": "overview"}}`},
		{name: "entry not string", data: `{"docs": {"Getting Started": [1]}}`},
		{name: "empty id", data: `{"docs": {"Getting Started": [""]}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"sidebars.json": &fstest.MapFile{Data: []byte(tc.data)},
			}
			if _, err := LoadSidebar(fsys, docs.CurrentVersion); !errors.Is(err, ErrSidebarFileInvalid) {
				t.Fatalf("expected ErrSidebarFileInvalid, got %v", err)
			}
		})
	}
}

func TestSidebarDocIDs(t *testing.T) {
	sidebar := Sidebar{
		"docs": {
			"Getting Started": {"overview", "install"},
			"Guides":          {"overview", "advanced"},
		},
	}

	ids := sidebar.DocIDs()
	want := []string{"advanced", "install", "overview"}
	if len(ids) != len(want) {
		t.Fatalf("unexpected ids %#v", ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("id %d = %q, want %q", i, ids[i], id)
		}
	}
}
