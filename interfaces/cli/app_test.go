package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `
name: usda-postgres
version: "1.0"
database:
  host: localhost
  database: usda
  user: postgres
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}

func TestApp_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"version"})
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "usda-mcp version") {
		t.Errorf("version output missing 'usda-mcp version', got: %s", output)
	}
}

func TestApp_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"--help"})
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "USDA National Nutrient Database") {
		t.Errorf("help output missing description, got: %s", output)
	}
	for _, sub := range []string{"serve", "tools", "validate", "version"} {
		if !strings.Contains(output, sub) {
			t.Errorf("help output missing %q command, got: %s", sub, output)
		}
	}
}

func TestApp_Validate(t *testing.T) {
	configPath := writeConfig(t, validConfig)

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"validate", "-c", configPath})
	if err != nil {
		t.Fatalf("validate command failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Configuration is valid") {
		t.Errorf("validate output missing 'Configuration is valid', got: %s", output)
	}
	if !strings.Contains(output, "Transport: stdio") {
		t.Errorf("validate output missing default transport, got: %s", output)
	}
	if strings.Contains(output, "password") {
		t.Errorf("validate output must not mention credentials, got: %s", output)
	}
}

func TestApp_ValidateInvalid(t *testing.T) {
	configPath := writeConfig(t, `
name: usda-postgres
version: "1.0"
server:
  transport: carrier-pigeon
database:
  host: localhost
  database: usda
  user: postgres
`)

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"validate", "-c", configPath})
	if err == nil {
		t.Fatal("validate command should fail for invalid transport")
	}
	if !strings.Contains(err.Error(), "transport") {
		t.Errorf("error should mention transport, got: %v", err)
	}
}

func TestApp_ValidateMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"validate", "-c", "does-not-exist.yaml"})
	if err == nil {
		t.Fatal("validate command should fail for missing file")
	}
}

func TestApp_ValidateStrictEnv(t *testing.T) {
	configPath := writeConfig(t, `
name: usda-postgres
version: "1.0"
database:
  host: localhost
  database: usda
  user: postgres
  password: ${USDA_MCP_TEST_MISSING_VAR}
`)

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"validate", "-c", configPath, "--strict"})
	if err == nil {
		t.Fatal("strict validation should fail for missing env var")
	}
}

func TestApp_ValidateShowSchema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"validate", "--schema"})
	if err != nil {
		t.Fatalf("validate --schema failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "$schema") {
		t.Errorf("schema output missing '$schema', got: %s", output)
	}
	if !strings.Contains(output, "USDA MCP Server Configuration") {
		t.Errorf("schema output missing title, got: %s", output)
	}
}

func TestApp_Tools(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"tools"})
	if err != nil {
		t.Fatalf("tools command failed: %v", err)
	}

	output := stdout.String()
	for _, name := range []string{
		"foods", "database",
		"search_foods", "get_nutrition_profile", "compare_foods_nutrition",
		"execute_query", "list_tables",
	} {
		if !strings.Contains(output, name) {
			t.Errorf("tools output missing %q, got: %s", name, output)
		}
	}
}

func TestApp_ToolsVerbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"tools", "-v"})
	if err != nil {
		t.Fatalf("tools -v failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "ReadOnly: true") {
		t.Errorf("verbose output missing annotations, got: %s", output)
	}
	if !strings.Contains(output, "Risk level:") {
		t.Errorf("verbose output missing risk level, got: %s", output)
	}
}

func TestApp_ServeUnknownTransport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"serve", "--transport", "smoke"})
	if err == nil {
		t.Fatal("serve should fail for unknown transport")
	}
	if !strings.Contains(err.Error(), "unknown transport") {
		t.Errorf("error should mention unknown transport, got: %v", err)
	}
}
