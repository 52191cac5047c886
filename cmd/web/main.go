// Command web runs the artist marketplace API.
package main

import "github.com/chaitali929/coremodeling/internal/app"

func main() {
	app.Run()
}
