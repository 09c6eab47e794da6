// filepath: cmd/soundvault/main.go
package main

import (
	"soundvault/internal/cli"

	_ "soundvault/docs" // swagger docs
)

//	@title			SoundVault API
//	@version		1.0
//	@description	Music licensing catalog: tracks, genres, moods, and audio asset uploads.

//	@securityDefinitions.basic	BasicAuth

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cli.Execute()
}
