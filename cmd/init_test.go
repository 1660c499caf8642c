package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docksmith/cmd/ui/sequential"
	"docksmith/pkg/config"
	"docksmith/pkg/detector"
	"docksmith/pkg/generator"
	"docksmith/pkg/runtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunInit_DetectsAndWrites(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{"manage.py": "", "requirements.txt": "django\n"})

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "django", result.Detection.Framework)
	assert.Equal(t, runtime.RuntimeDocker, result.Runtime.Runtime)
	assert.Equal(t, "production", result.Mode)
	assert.Equal(t, config.DefaultPort, result.Port)
	assert.Equal(t, generator.ArtifactNames, result.Files)

	ignore, err := os.ReadFile(filepath.Join(dir, ".dockerignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), "__pycache__")

	app := appOf(readCompose(t, dir))
	assert.Equal(t, []any{"3000:3000"}, app["ports"])
}

func TestRunInit_FlagsOverride(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{"package.json": `{"dependencies": {"express": "4"}}`})

	_, err := runInit(context.Background(), initOptions{
		dir:     dir,
		yes:     true,
		dev:     config.Bool(true),
		port:    config.Int(8080),
		envVars: []string{"LOG_LEVEL=debug"},
	}, nil, zap.NewNop())
	require.NoError(t, err)

	app := appOf(readCompose(t, dir))
	assert.Equal(t, "development", app["build"].(map[string]any)["target"])
	assert.Equal(t, []any{"8080:8080"}, app["ports"])
	assert.Equal(t, []any{".:/app"}, app["volumes"])
	assert.Equal(t, "debug", app["environment"].(map[string]any)["LOG_LEVEL"])
}

func TestRunInit_ProjectFileAndFlagPrecedence(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{
		"main.py":        "",
		"docksmith.toml": "framework = \"flask\"\nport = 5000\n",
	})

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true, port: config.Int(6000)}, nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "flask", result.Detection.Framework, "file beats detection")
	assert.Equal(t, 6000, result.Port, "flag beats file")
}

func TestRunInit_NoFrameworkNonInteractive(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{"go.mod": "module x"})

	_, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	assert.ErrorIs(t, err, errNoFramework)

	_, statErr := os.Stat(filepath.Join(dir, "Dockerfile"))
	assert.True(t, os.IsNotExist(statErr), "nothing written")
}

func TestRunInit_NoFrameworkPromptsForOne(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, nil)
	p := &scriptedPrompter{framework: "fastapi", confirm: true, answers: sequential.InitAnswers{Port: 8000, Development: true}}

	result, err := runInit(context.Background(), initOptions{dir: dir}, p, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"framework", "progress", "confirm", "questions"}, p.asked)
	assert.Equal(t, "fastapi", result.Detection.Framework)
	assert.Equal(t, 8000, result.Port)
	assert.Equal(t, "development", result.Mode)
}

func TestRunInit_UserDeclines(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{"manage.py": ""})

	_, err := runInit(context.Background(), initOptions{dir: dir}, &scriptedPrompter{confirm: false}, zap.NewNop())
	assert.ErrorIs(t, err, errSkipped)

	_, statErr := os.Stat(filepath.Join(dir, "compose.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunInit_NoRuntime(t *testing.T) {
	useRuntimes(t, fakeRunner{})
	dir := writeProject(t, map[string]string{"manage.py": ""})

	_, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	assert.ErrorIs(t, err, runtime.ErrNoRuntimeAvailable)
}

func TestRunInit_ExplicitRuntime(t *testing.T) {
	useRuntimes(t, fakeRunner{
		"docker --version": "Docker version 24.0.7",
		"orbctl version":   "Version: 1.5.0",
	})
	dir := writeProject(t, map[string]string{"manage.py": ""})

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true, runtime: "docker"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, runtime.RuntimeDocker, result.Runtime.Runtime)

	_, err = runInit(context.Background(), initOptions{dir: dir, yes: true, runtime: "podman"}, nil, zap.NewNop())
	assert.ErrorIs(t, err, runtime.ErrRuntimeUnavailable)
}

func TestRunInit_OrbStackPreferred(t *testing.T) {
	useRuntimes(t, fakeRunner{
		"docker --version": "Docker version 99.9.9",
		"orbctl version":   "Version: 0.0.1",
	})
	dir := writeProject(t, map[string]string{"manage.py": ""})

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, runtime.RuntimeOrbStack, result.Runtime.Runtime)
	assert.Equal(t, map[string]any{"accelerated": true}, appOf(readCompose(t, dir))["x-orbstack"])
}

func TestRunInit_UnknownFramework(t *testing.T) {
	useRuntimes(t, dockerOnly)

	_, err := runInit(context.Background(), initOptions{dir: t.TempDir(), yes: true, framework: "rails"}, nil, zap.NewNop())
	assert.ErrorIs(t, err, detector.ErrUnknownFramework)
}

func TestRunInit_ProjectTemplateOverride(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{
		"manage.py":                              "",
		".docksmith/templates/django/Dockerfile": "FROM custom AS production\n",
	})

	_, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	assert.Equal(t, "FROM custom AS production\n", string(got))
}

func TestRunInit_BadTemplatesDirWritesNothing(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{"manage.py": ""})

	_, err := runInit(context.Background(), initOptions{dir: dir, yes: true, templates: filepath.Join(t.TempDir(), "missing")}, nil, zap.NewNop())
	require.Error(t, err)

	for _, name := range generator.ArtifactNames {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(statErr), name)
	}
}

func TestRunInit_EnvironmentBetweenFileAndFlags(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{
		"manage.py":      "",
		"docksmith.toml": "port = 5000\n",
	})
	t.Setenv(config.EnvPort, "7000")

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 7000, result.Port)

	result, err = runInit(context.Background(), initOptions{dir: dir, yes: true, port: config.Int(9000)}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 9000, result.Port)
}

func TestRunInit_YesNeverOpensPicker(t *testing.T) {
	useRuntimes(t, dockerOnly)
	p := &scriptedPrompter{framework: "flask", confirm: true}

	_, err := runInit(context.Background(), initOptions{dir: writeProject(t, nil), yes: true}, p, zap.NewNop())
	assert.ErrorIs(t, err, errNoFramework)
	assert.Empty(t, p.asked)
}

func TestRunInit_ChoosesBetweenSeveralRuntimes(t *testing.T) {
	useRuntimes(t, fakeRunner{
		"docker --version": "Docker version 24.0.7",
		"podman --version": "podman version 4.9.3",
	})
	dir := writeProject(t, map[string]string{"manage.py": ""})
	p := &scriptedPrompter{runtime: "podman", confirm: true, answers: sequential.InitAnswers{Port: 3000}}

	result, err := runInit(context.Background(), initOptions{dir: dir}, p, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"progress", "runtime", "confirm", "questions"}, p.asked)
	assert.Equal(t, []runtime.Runtime{runtime.RuntimeDocker, runtime.RuntimePodman}, p.offered, "preferred runtime first")
	assert.Equal(t, runtime.RuntimePodman, result.Runtime.Runtime)
	assert.Equal(t, "podman", result.ComposeCommand)
}

func TestRunInit_SeveralRuntimesWithYesUsesPriority(t *testing.T) {
	useRuntimes(t, fakeRunner{
		"docker --version": "Docker version 24.0.7",
		"podman --version": "podman version 4.9.3",
	})
	dir := writeProject(t, map[string]string{"manage.py": ""})
	p := &scriptedPrompter{runtime: "podman"}

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, p, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"progress"}, p.asked)
	assert.Equal(t, runtime.RuntimeDocker, result.Runtime.Runtime)
}

func TestRunInit_DotEnvLeavesProcessEnvironment(t *testing.T) {
	useRuntimes(t, dockerOnly)
	dir := writeProject(t, map[string]string{
		"manage.py": "",
		".env":      "DOCKSMITH_PORT=4100\n",
	})
	t.Setenv(config.EnvPort, "")
	os.Unsetenv(config.EnvPort)

	result, err := runInit(context.Background(), initOptions{dir: dir, yes: true}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 4100, result.Port)

	_, set := os.LookupEnv(config.EnvPort)
	assert.False(t, set)

	result, err = runInit(context.Background(), initOptions{dir: writeProject(t, map[string]string{"manage.py": ""}), yes: true}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, result.Port, "a previous project's .env does not carry over")
}
