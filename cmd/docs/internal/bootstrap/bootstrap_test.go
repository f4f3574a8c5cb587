package bootstrap

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildModuleDefaults(t *testing.T) {
	resources, err := BuildModule(Options{DocsRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil {
		t.Fatal("expected module to be initialised")
	}
	if resources.Logger == nil {
		t.Fatal("expected CLI logger to be configured")
	}
	if resources.Module.Linter() == nil {
		t.Fatal("expected lint service to be enabled by default")
	}
}

func TestBuildModuleEnablesGenerator(t *testing.T) {
	resources, err := BuildModule(Options{
		DocsRoot:         t.TempDir(),
		GeneratorEnabled: true,
		OutputDir:        t.TempDir(),
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	container := resources.Module.Container()
	if container.GeneratorService() == nil {
		t.Fatal("expected generator service to be configured")
	}
}

func TestBuildModulePlumbsTimeouts(t *testing.T) {
	resources, err := BuildModule(Options{
		DocsRoot:         t.TempDir(),
		CommandTimeout:   250 * time.Millisecond,
		GeneratorEnabled: true,
		OutputDir:        t.TempDir(),
		RenderTimeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	cfg := resources.Module.Container().Config
	if cfg.Commands.Timeout != 250*time.Millisecond {
		t.Fatalf("command timeout not applied, got %v", cfg.Commands.Timeout)
	}
	if cfg.Generator.RenderTimeout != time.Second {
		t.Fatalf("render timeout not applied, got %v", cfg.Generator.RenderTimeout)
	}
}

func TestSplitVersions(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"  ", nil},
		{"1.0.0", []string{"1.0.0"}},
		{"1.0.0,2.0.0", []string{"1.0.0", "2.0.0"}},
		{" 1.0.0 , ,2.0.0 ", []string{"1.0.0", "2.0.0"}},
	}

	for _, tc := range cases {
		if got := SplitVersions(tc.input); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitVersions(%q) = %#v, want %#v", tc.input, got, tc.want)
		}
	}
}

func TestBoolFlag(t *testing.T) {
	if BoolFlag(false, true) != nil {
		t.Fatal("unset flags must yield nil so config defaults apply")
	}
	set := BoolFlag(true, true)
	if set == nil || !*set {
		t.Fatalf("expected pointer to true, got %v", set)
	}
	unsetValue := BoolFlag(true, false)
	if unsetValue == nil || *unsetValue {
		t.Fatalf("expected pointer to false, got %v", unsetValue)
	}
}
