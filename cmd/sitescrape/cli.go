package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" placeholder:"PATH" help:"Site config file, TOML or YAML by extension (default: ./scrape.toml)"`
	Init    bool   `short:"i" help:"Write a default config file and exit"`
	DryRun  bool   `name:"dry-run" help:"Crawl without writing any file"`
	Target  string `short:"t" default:"./" help:"Directory receiving the generated pages"`
	Verbose bool   `short:"v" help:"Log every fetch"`
	LogFile string `name:"log-file" placeholder:"PATH" help:"Also write JSON logs to a rotated file"`
}
