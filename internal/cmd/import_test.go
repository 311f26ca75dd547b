package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"svcparams/internal/params"
)

const paymentResponse = `{
  "resultCode": "IdentifyShopper",
  "additionalData": {
    "threeds2.directoryServerId": "F013371337",
    "threeds2.publicKey": "eyJrdHkiOiJFQyJ9",
    "threeds2.threeDS2Token": "BQABAQ",
    "paymentMethod": "visa",
    "threeds2.nested": {"a": 1}
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImport_PaymentResponse(t *testing.T) {
	app, out := setupTestApp(t)
	path := writeFile(t, "response.json", paymentResponse)

	if err := run(t, app, newImportCmd, path); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	want := "Imported 3 parameter(s) into " + string(params.ServiceGroup) + "\n"
	if got := out.String(); got != want {
		t.Errorf("import output = %q, want %q", got, want)
	}

	tests := map[string]string{
		params.KeyDirectoryServerID: "F013371337",
		params.KeyPublicKey:         "eyJrdHkiOiJFQyJ9",
		"threeDS2Token":             "BQABAQ",
	}
	for key, want := range tests {
		if got, ok := app.Params.Get(key, params.ServiceGroup); !ok || got != want {
			t.Errorf("%s = %q, %v; want %q", key, got, ok, want)
		}
	}
	if _, ok := app.Params.Get("paymentMethod", params.ServiceGroup); ok {
		t.Error("unprefixed entry was imported")
	}
	if groups := app.Params.Params().Groups(); len(groups) != 1 {
		t.Errorf("groups = %v, want only the service group", groups)
	}
}

func TestImport_Stdin(t *testing.T) {
	app, _ := setupTestApp(t)
	app.In = strings.NewReader(`{"threeds2.publicKey": "pk", "other": "x"}`)

	if err := run(t, app, newImportCmd, "-"); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got, _ := app.Params.Get(params.KeyPublicKey, params.ServiceGroup); got != "pk" {
		t.Errorf("publicKey = %q, want %q", got, "pk")
	}
}

func TestImport_YAML(t *testing.T) {
	app, _ := setupTestApp(t)
	path := writeFile(t, "data.yaml", "threeds2.directoryServerId: F01\nlocale: en\n")

	if err := run(t, app, newImportCmd, path); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got, _ := app.Params.Get(params.KeyDirectoryServerID, params.ServiceGroup); got != "F01" {
		t.Errorf("directoryServerId = %q, want %q", got, "F01")
	}
}

func TestImport_KeepsExistingUnlessReplace(t *testing.T) {
	app, _ := setupTestApp(t)
	mustSet(t, app, "stale", "old", params.ServiceGroup)
	path := writeFile(t, "data.json", `{"threeds2.publicKey": "pk"}`)

	if err := run(t, app, newImportCmd, path); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if _, ok := app.Params.Get("stale", params.ServiceGroup); !ok {
		t.Error("import without --replace dropped an existing entry")
	}

	if err := run(t, app, newImportCmd, path, "--replace"); err != nil {
		t.Fatalf("import --replace failed: %v", err)
	}
	if _, ok := app.Params.Get("stale", params.ServiceGroup); ok {
		t.Error("import --replace kept an existing entry")
	}
	if got, _ := app.Params.Get(params.KeyPublicKey, params.ServiceGroup); got != "pk" {
		t.Errorf("publicKey = %q, want %q", got, "pk")
	}
}

func TestImport_CustomPrefixAndGroup(t *testing.T) {
	app, _ := setupTestApp(t)
	path := writeFile(t, "data.json", `{"custom.a": "1", "threeds2.b": "2"}`)

	if err := run(t, app, newImportCmd, path, "--prefix", "custom.", "--group", "sandbox"); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got, _ := app.Params.Get("a", "sandbox"); got != "1" {
		t.Errorf("sandbox/a = %q, want %q", got, "1")
	}
	if _, ok := app.Params.Get("b", params.ServiceGroup); ok {
		t.Error("entry with the default prefix was imported")
	}
}

func TestImport_PrefixFromSettings(t *testing.T) {
	app, _ := setupTestApp(t)
	if err := app.Settings.Set("import.prefix", "x."); err != nil {
		t.Fatal(err)
	}
	if err := app.Settings.Set("import.group", ""); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "data.json", `{"x.k": "v"}`)

	if err := run(t, app, newImportCmd, path); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got, _ := app.Params.Get("k", params.DefaultGroup); got != "v" {
		t.Errorf("default/k = %q, want %q", got, "v")
	}
}

func TestImport_NoMatches(t *testing.T) {
	app, out := setupTestApp(t)
	path := writeFile(t, "data.json", `{"paymentMethod": "visa"}`)

	if err := run(t, app, newImportCmd, path); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), `no entries with prefix "threeds2."`) {
		t.Errorf("expected no-match warning, got %q", out.String())
	}
	if n := app.Params.Params().Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestImport_JSON(t *testing.T) {
	app, out := setupTestApp(t)
	app.JSON = true
	path := writeFile(t, "response.json", paymentResponse)

	if err := run(t, app, newImportCmd, path); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var result importResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("parsing JSON: %v", err)
	}
	if result.Imported != 3 {
		t.Errorf("imported = %d, want 3", result.Imported)
	}
	if result.Ignored != 1 {
		t.Errorf("ignored = %d, want 1", result.Ignored)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "threeds2.nested" {
		t.Errorf("skipped = %v, want [threeds2.nested]", result.Skipped)
	}
	if result.Group != string(params.ServiceGroup) || result.Prefix != params.AdditionalDataPrefix {
		t.Errorf("group/prefix = %q/%q", result.Group, result.Prefix)
	}
}

func TestImport_Errors(t *testing.T) {
	app, _ := setupTestApp(t)

	if err := run(t, app, newImportCmd, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := run(t, app, newImportCmd, writeFile(t, "data.txt", "x")); err == nil {
		t.Error("expected error for unknown extension")
	}
	if err := run(t, app, newImportCmd, writeFile(t, "bad.json", "{")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
