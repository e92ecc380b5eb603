package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/session"
	"github.com/desertthunder/jukebox/internal/shared"
	tu "github.com/desertthunder/jukebox/internal/testing"
)

// run executes args against a runner backed by repo and a mock launcher.
// The config path points into a temp dir so the embedded defaults are used.
func run(t *testing.T, repo models.SongRepository, input string, args ...string) (*bytes.Buffer, *tu.MockLauncher, error) {
	t.Helper()

	output := &bytes.Buffer{}
	launcher := &tu.MockLauncher{}
	runner := NewRunner(RunnerOpts{
		Catalog:  repo,
		Launcher: launcher,
		Logger:   shared.NewLogger(&bytes.Buffer{}),
		Input:    strings.NewReader(input),
		Output:   output,
	})

	argv := append([]string{"jukebox", "--config", filepath.Join(t.TempDir(), "config.toml")}, args...)
	err := newApp(runner).Run(context.Background(), argv)
	return output, launcher, err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			repo := tu.NewMemoryRepository()
			launcher := &tu.MockLauncher{}

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Logger:   logger,
				Output:   output,
				Input:    input,
				Catalog:  repo,
				Launcher: launcher,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.catalog != repo {
				t.Error("expected catalog to be set")
			}
			if runner.launcher != launcher {
				t.Error("expected launcher to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: nil})

			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 3 {
			t.Errorf("expected 3 commands, got %d", len(commands))
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		t.Run("missing file falls back to defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})

			config, err := runner.loadConfig()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Catalog.Driver != shared.DefaultConfig().Catalog.Driver {
				t.Errorf("expected default driver, got %s", config.Catalog.Driver)
			}
		})

		t.Run("reads an existing file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := shared.CreateConfigFile(path); err != nil {
				t.Fatalf("failed to create config: %v", err)
			}

			runner := NewRunner(RunnerOpts{ConfigPath: path})
			if _, err := runner.loadConfig(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("invalid file is an error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			tu.MustWriteFile(t, path, "[catalog\n")

			runner := NewRunner(RunnerOpts{ConfigPath: path})
			if _, err := runner.loadConfig(); err == nil {
				t.Fatal("expected error for malformed config")
			}
		})
	})
}

func TestJukebox(t *testing.T) {
	t.Run("power off exits through ErrPowerOff", func(t *testing.T) {
		output, launcher, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "3\n")

		if !errors.Is(err, session.ErrPowerOff) {
			t.Fatalf("expected ErrPowerOff, got %v", err)
		}
		if !strings.Contains(output.String(), "Powering off, have a nice day.") {
			t.Errorf("expected power off message, got %q", output.String())
		}
		if len(launcher.Launched) != 0 {
			t.Errorf("expected no playback, got %v", launcher.Titles())
		}
	})

	t.Run("plays the selected song", func(t *testing.T) {
		output, launcher, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "1\n2\nn\n")

		if !errors.Is(err, session.ErrPowerOff) {
			t.Fatalf("expected ErrPowerOff, got %v", err)
		}
		if titles := launcher.Titles(); len(titles) != 1 || titles[0] != "In The End" {
			t.Errorf("expected [In The End], got %v", titles)
		}
		if !strings.Contains(output.String(), "Now playing: In The End by Linkin Park") {
			t.Errorf("expected now playing line, got %q", output.String())
		}
	})

	t.Run("closed input ends the session", func(t *testing.T) {
		_, _, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "")

		if !errors.Is(err, shared.ErrInputClosed) {
			t.Fatalf("expected ErrInputClosed, got %v", err)
		}
	})

	t.Run("catalog failure is returned", func(t *testing.T) {
		repo := tu.NewMemoryRepository()
		repo.Err = shared.ErrConnection

		_, _, err := run(t, repo, "3\n")
		if !errors.Is(err, shared.ErrConnection) {
			t.Fatalf("expected ErrConnection, got %v", err)
		}
	})
}

func TestSongs(t *testing.T) {
	t.Run("list renders a table", func(t *testing.T) {
		output, _, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "", "songs", "list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		for _, want := range []string{"Safe and Sound", "Capital Cities", "In The End", "Linkin Park"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output, got %q", want, output.String())
			}
		}
	})

	t.Run("list on empty catalog", func(t *testing.T) {
		output, _, err := run(t, tu.NewMemoryRepository(), "", "songs", "list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "The catalog is empty.") {
			t.Errorf("expected empty message, got %q", output.String())
		}
	})

	t.Run("list as JSON", func(t *testing.T) {
		output, _, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "", "songs", "list", "--json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"title": "In The End"`) {
			t.Errorf("expected JSON output, got %q", output.String())
		}
	})

	t.Run("show", func(t *testing.T) {
		output, _, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "", "songs", "show", "In The End", "Linkin Park")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "https://www.youtube.com/watch?v=eVTXPUF4Oz4") {
			t.Errorf("expected link in output, got %q", output.String())
		}
	})

	t.Run("show missing song", func(t *testing.T) {
		_, _, err := run(t, tu.NewMemoryRepository(), "", "songs", "show", "Numb", "Linkin Park")
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Fatalf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("show without arguments", func(t *testing.T) {
		_, _, err := run(t, tu.NewMemoryRepository(), "", "songs", "show")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("add then remove", func(t *testing.T) {
		repo := tu.NewMemoryRepository()

		if _, _, err := run(t, repo, "", "songs", "add", "Numb", "Linkin Park", "https://www.youtube.com/watch?v=kXYiU_JCYtU"); err != nil {
			t.Fatalf("add: expected no error, got %v", err)
		}
		if _, err := repo.FindByKey(context.Background(), "Numb", "Linkin Park"); err != nil {
			t.Fatalf("expected song to be stored, got %v", err)
		}

		if _, _, err := run(t, repo, "", "songs", "remove", "Numb", "Linkin Park"); err != nil {
			t.Fatalf("remove: expected no error, got %v", err)
		}
		if _, err := repo.FindByKey(context.Background(), "Numb", "Linkin Park"); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected song to be removed, got %v", err)
		}
	})

	t.Run("add rejects an invalid link", func(t *testing.T) {
		_, _, err := run(t, tu.NewMemoryRepository(), "", "songs", "add", "Numb", "Linkin Park", "not a link")
		if !errors.Is(err, shared.ErrInvalidSong) {
			t.Fatalf("expected ErrInvalidSong, got %v", err)
		}
	})

	t.Run("import", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")
		tu.MustWriteFile(t, path, "title,artist,youtube\n"+
			"Numb,Linkin Park,https://www.youtube.com/watch?v=kXYiU_JCYtU\n"+
			"Safe and Sound,Capital Cities,https://www.youtube.com/watch?v=updated\n")

		repo := tu.NewMemoryRepository(tu.SampleSongs()...)
		output, _, err := run(t, repo, "", "songs", "import", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Imported 2 of 2 songs") {
			t.Errorf("expected import summary, got %q", output.String())
		}

		songs, _ := repo.FindAll(context.Background())
		if len(songs) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(songs))
		}
		if songs[0].Link != "https://www.youtube.com/watch?v=updated" {
			t.Errorf("expected link to be updated, got %s", songs[0].Link)
		}
	})

	t.Run("import dry run writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")
		tu.MustWriteFile(t, path, "title,artist,link\nNumb,Linkin Park,https://www.youtube.com/watch?v=kXYiU_JCYtU\n")

		repo := tu.NewMemoryRepository()
		if _, _, err := run(t, repo, "", "songs", "import", "--dry-run", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		songs, _ := repo.FindAll(context.Background())
		if len(songs) != 0 {
			t.Errorf("expected no songs written, got %d", len(songs))
		}
	})

	t.Run("import rejects invalid rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")
		tu.MustWriteFile(t, path, "title,artist,link\nNumb,,https://www.youtube.com/watch?v=kXYiU_JCYtU\n")

		_, _, err := run(t, tu.NewMemoryRepository(), "", "songs", "import", path)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("export to stdout", func(t *testing.T) {
		output, _, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "", "songs", "export", "--format", "csv")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(output.String(), "Title,Artist,Link\n") {
			t.Errorf("expected CSV header, got %q", output.String())
		}
	})

	t.Run("export to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.md")
		if _, _, err := run(t, tu.NewMemoryRepository(tu.SampleSongs()...), "", "songs", "export", "-f", "markdown", "-o", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "# Karaoke Catalog") {
			t.Errorf("expected markdown title, got %q", content)
		}
	})

	t.Run("export with unknown format", func(t *testing.T) {
		_, _, err := run(t, tu.NewMemoryRepository(), "", "songs", "export", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("config writes the template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.toml")
		output, _, err := run(t, nil, "", "setup", "config", "--output", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected path in output, got %q", output.String())
		}
	})

	t.Run("database migrates sqlite", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("KARAOKE_CATALOG_DRIVER", shared.DriverSQLite)
		t.Setenv("KARAOKE_DB_PATH", filepath.Join(dir, "jukebox.db"))

		output, _, err := run(t, nil, "", "setup", "database")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "SQLite catalog ready") {
			t.Errorf("expected ready message, got %q", output.String())
		}
		tu.AssertFileExists(t, filepath.Join(dir, "jukebox.db"))
	})

	t.Run("rollback needs sqlite", func(t *testing.T) {
		t.Setenv("KARAOKE_CATALOG_DRIVER", shared.DriverMongo)

		_, _, err := run(t, nil, "", "setup", "rollback")
		if !errors.Is(err, shared.ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported, got %v", err)
		}
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		var logs bytes.Buffer
		loadEnv(shared.NewLogger(&logs), filepath.Join(t.TempDir(), ".env"))

		if logs.Len() != 0 {
			t.Errorf("expected no log output, got %q", logs.String())
		}
	})

	t.Run("sets variables from the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		tu.MustWriteFile(t, path, "KARAOKE_DB_PATH=/tmp/from-env.db\n")
		t.Setenv("KARAOKE_DB_PATH", "")
		os.Unsetenv("KARAOKE_DB_PATH")

		var logs bytes.Buffer
		loadEnv(shared.NewLogger(&logs), path)

		if got := os.Getenv("KARAOKE_DB_PATH"); got != "/tmp/from-env.db" {
			t.Errorf("expected KARAOKE_DB_PATH from .env, got %q", got)
		}
		if logs.Len() != 0 {
			t.Errorf("expected no log output, got %q", logs.String())
		}
	})

	t.Run("malformed file is logged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		tu.MustWriteFile(t, path, "KARAOKE_DB_PATH='unterminated\n")

		var logs bytes.Buffer
		loadEnv(shared.NewLogger(&logs), path)

		if !strings.Contains(logs.String(), "failed to load .env") {
			t.Errorf("expected warning, got %q", logs.String())
		}
	})
}
