package main

import "github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/cmd"

//	@title			Open Source Project Health Dashboard API
//	@version		1.0
//	@description	Repository health snapshots, side-by-side comparisons and a refreshed watchlist.
//	@BasePath		/
func main() {
	cmd.Execute()
}
