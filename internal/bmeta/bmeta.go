package bmeta

import "fmt"

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Заполняются через ldflags при сборке.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// Version возвращает версию сборки.
func Version() string {
	return orDefault(buildVersion)
}

// Commit возвращает комит сборки.
func Commit() string {
	return orDefault(buildCommit)
}

// Print Распечатывает версию, дату и комит сборки.
func Print() {
	fmt.Printf("Build version: %s\n", orDefault(buildVersion)) //nolint:forbidigo
	fmt.Printf("Build date: %s\n", orDefault(buildDate))       //nolint:forbidigo
	fmt.Printf("Build commit: %s\n", orDefault(buildCommit))   //nolint:forbidigo
}

func orDefault(value string) string {
	if value == "" {
		return defaultBuildMeta
	}
	return value
}
