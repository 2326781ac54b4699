package config

// checks loads each game's config type from an explicit path.
var checks = map[string]func(gameID, path string) error{
	"stack":     check(DefaultStackConfig),
	"runner":    check(DefaultRunnerConfig),
	"arena":     check(DefaultArenaConfig),
	"slingshot": check(DefaultSlingshotConfig),
	"match3":    check(DefaultMatch3Config),
	"memory":    check(DefaultMemoryConfig),
	"catcher":   check(DefaultCatcherConfig),
	"whack":     check(DefaultWhackConfig),
}

func check[T any](fallback func() T) func(gameID, path string) error {
	return func(gameID, path string) error {
		_, err := Load(gameID, path, fallback)
		return err
	}
}

// Check reports whether the game's config can be loaded from customPath.
// An empty path and games without a config always pass.
func Check(gameID, customPath string) error {
	if customPath == "" {
		return nil
	}
	fn, ok := checks[gameID]
	if !ok {
		return nil
	}
	return fn(gameID, customPath)
}
