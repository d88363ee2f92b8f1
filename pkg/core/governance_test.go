//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/leaplint"

// TestGovernance_CoreCohesion verifies that exported names in pkg/core are
// used by at least two packages. Single-use types belong to their consumer.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	coreDefs := make(map[types.Object]string)
	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/core" {
			continue
		}
		corePkg = p
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			// Enum values are judged together with their type.
			if _, isConst := obj.(*types.Const); isConst {
				continue
			}
			if obj.Exported() {
				coreDefs[obj] = name
			}
		}
		break
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	usageMap := make(map[string]map[string]bool)
	for _, name := range coreDefs {
		usageMap[name] = make(map[string]bool)
	}

	base := modulePath + "/"
	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreDefs[obj]; ok {
				usageMap[name][strings.TrimPrefix(p.PkgPath, base)] = true
			}
		}
	}

	for typeName, importers := range usageMap {
		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused Core Type: %s (consider deleting)", typeName)
		case 1:
			for user := range importers {
				t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
					"   Fix: Move it from pkg/core to %s.", typeName, user, user)
			}
		}
	}
}

// TestGovernance_Layering checks the import direction between layers:
// pkg/core depends only on pkg/token, and nothing under pkg/ imports
// internal/ or cmd/.
func TestGovernance_Layering(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		rel := strings.TrimPrefix(p.PkgPath, modulePath+"/")
		for imp := range p.Imports {
			if !strings.HasPrefix(imp, modulePath+"/") {
				continue
			}
			target := strings.TrimPrefix(imp, modulePath+"/")

			if strings.HasPrefix(target, "internal/") || strings.HasPrefix(target, "cmd/") {
				t.Errorf("LAYER VIOLATION: '%s' imports '%s'.\n"+
					"   Fix: public packages must not depend on internal code.", rel, target)
			}
			if rel == "pkg/core" && target != "pkg/token" {
				t.Errorf("LAYER VIOLATION: 'pkg/core' imports '%s'.\n"+
					"   Fix: pkg/core may import only pkg/token and the standard library.", target)
			}
		}
	}
}
