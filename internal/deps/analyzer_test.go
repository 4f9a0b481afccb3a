package deps

import (
	"testing"

	"github.com/archmine/archmine-go/internal/models"
)

func TestParseDiffGoMod(t *testing.T) {
	diff := `diff --git a/go.mod b/go.mod
--- a/go.mod
+++ b/go.mod
@@ -5,2 +5,2 @@
+	github.com/jackc/pgx/v5 v5.5.0
-	github.com/lib/pq v1.10.9
+	github.com/sirupsen/logrus v1.9.3
-	github.com/sirupsen/logrus v1.9.0
`

	deltas := ParseDiff(diff)
	if len(deltas) != 3 {
		t.Fatalf("got %d deltas, want 3: %+v", len(deltas), deltas)
	}

	byName := make(map[string]models.DependencyDelta)
	for _, d := range deltas {
		byName[d.Name] = d
	}

	if d := byName["github.com/jackc/pgx/v5"]; d.ChangeType != models.DependencyAdded {
		t.Errorf("pgx delta = %+v, want added", d)
	}
	if d := byName["github.com/lib/pq"]; d.ChangeType != models.DependencyRemoved {
		t.Errorf("pq delta = %+v, want removed", d)
	}
	if d := byName["github.com/sirupsen/logrus"]; d.ChangeType != models.DependencyUpdated {
		t.Errorf("logrus delta = %+v, want updated", d)
	}
	for _, d := range deltas {
		if d.Manifest != "go.mod" {
			t.Errorf("delta %s attributed to %q, want go.mod", d.Name, d.Manifest)
		}
	}
}

func TestParseDiffIgnoresGoModNoise(t *testing.T) {
	diff := `+++ b/go.mod
+module github.com/example/app
+go 1.24.0
+	github.com/davecgh/go-spew v1.1.1 // indirect
`

	if deltas := ParseDiff(diff); len(deltas) != 0 {
		t.Errorf("module/go/indirect lines produced deltas: %+v", deltas)
	}
}

func TestParseDiffPackageJSON(t *testing.T) {
	diff := `+++ b/web/package.json
+    "react": "^18.2.0",
+    "@testing-library/react": "~14.0.0",
-    "jquery": "3.6.0",
+  "name": "web-app",
`

	deltas := ParseDiff(diff)
	if len(deltas) != 3 {
		t.Fatalf("got %d deltas, want 3: %+v", len(deltas), deltas)
	}

	byName := make(map[string]models.DependencyChangeType)
	for _, d := range deltas {
		byName[d.Name] = d.ChangeType
		if d.Manifest != "web/package.json" {
			t.Errorf("delta %s attributed to %q", d.Name, d.Manifest)
		}
	}
	if byName["react"] != models.DependencyAdded {
		t.Error("react not recorded as added")
	}
	if byName["@testing-library/react"] != models.DependencyAdded {
		t.Error("scoped package not recorded as added")
	}
	if byName["jquery"] != models.DependencyRemoved {
		t.Error("jquery not recorded as removed")
	}
}

func TestParseDiffRequirements(t *testing.T) {
	diff := `+++ b/requirements.txt
+flask==3.0.0
+requests>=2.31
-django==4.2
+# a comment
+-r base.txt
`

	deltas := ParseDiff(diff)
	if len(deltas) != 3 {
		t.Fatalf("got %d deltas, want 3: %+v", len(deltas), deltas)
	}
	names := map[string]bool{}
	for _, d := range deltas {
		names[d.Name] = true
	}
	for _, want := range []string{"flask", "requests", "django"} {
		if !names[want] {
			t.Errorf("missing delta for %s", want)
		}
	}
}

func TestParseDiffPomAndGemfile(t *testing.T) {
	diff := `+++ b/pom.xml
+        <artifactId>spring-boot-starter-web</artifactId>
-        <artifactId>commons-lang3</artifactId>
+++ b/Gemfile
+gem "sidekiq"
-gem 'resque'
`

	deltas := ParseDiff(diff)
	if len(deltas) != 4 {
		t.Fatalf("got %d deltas, want 4: %+v", len(deltas), deltas)
	}

	// Sorted by manifest then name
	if deltas[0].Manifest != "Gemfile" || deltas[2].Manifest != "pom.xml" {
		t.Errorf("unexpected manifest ordering: %+v", deltas)
	}
}

func TestParseDiffDeletedManifestAfterAnother(t *testing.T) {
	diff := `diff --git a/go.mod b/go.mod
--- a/go.mod
+++ b/go.mod
@@ -5,1 +5,1 @@
+	github.com/google/uuid v1.6.0
diff --git a/package.json b/package.json
--- a/package.json
+++ /dev/null
@@ -1,10 +0,0 @@
-    "react": "^18.2.0",
-    "lodash": "^4.17.21",
`

	deltas := ParseDiff(diff)
	if len(deltas) != 3 {
		t.Fatalf("got %d deltas, want 3: %+v", len(deltas), deltas)
	}

	byName := make(map[string]models.DependencyDelta)
	for _, d := range deltas {
		byName[d.Name] = d
	}

	if d := byName["github.com/google/uuid"]; d.ChangeType != models.DependencyAdded || d.Manifest != "go.mod" {
		t.Errorf("uuid delta = %+v, want added in go.mod", d)
	}
	if d := byName["react"]; d.ChangeType != models.DependencyRemoved || d.Manifest != "package.json" {
		t.Errorf("react delta = %+v, want removed in package.json", d)
	}
	if d := byName["lodash"]; d.ChangeType != models.DependencyRemoved || d.Manifest != "package.json" {
		t.Errorf("lodash delta = %+v, want removed in package.json", d)
	}
}

func TestParseDiffDeletedManifest(t *testing.T) {
	diff := `diff --git a/requirements.txt b/requirements.txt
--- a/requirements.txt
+++ /dev/null
-flask==3.0.0
`

	deltas := ParseDiff(diff)
	if len(deltas) != 1 {
		t.Fatalf("got %d deltas, want 1: %+v", len(deltas), deltas)
	}
	if deltas[0].Name != "flask" || deltas[0].ChangeType != models.DependencyRemoved {
		t.Errorf("delta = %+v, want flask removed", deltas[0])
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want manifestKind
	}{
		{"go.mod", manifestGoMod},
		{"web/package.json", manifestPackageJSON},
		{"requirements.txt", manifestRequirements},
		{"service/pom.xml", manifestPomXML},
		{"Cargo.toml", manifestCargoToml},
		{"Gemfile", manifestGemfile},
		{"App/App.csproj", manifestCsproj},
		{"go.sum", manifestNone},
		{"internal/user/service.go", manifestNone},
	}

	for _, tt := range tests {
		if got := kindOf(tt.path); got != tt.want {
			t.Errorf("kindOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
