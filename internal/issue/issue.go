// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CommandNotFoundId Id = iota + 1
	ExecFailedId
	ConfigLoadFailedId
	InvalidPrefixId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown. stylePath is a glamour
// style name ("auto", "dark", "light", ...) or a path to a style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

const helpLink HttpLink = "https://wikitech.wikimedia.org/wiki/Help:Toolforge"

var (
	render = glamour.Render

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Unknown subcommand!

Every toolforge subcommand is a separate program named ` + "`toolforge-<name>`" + `
somewhere on your PATH. None of the directories on your PATH has one with this name.

## Things you can try:
- List the subcommands that were found:
~~~
$ toolforge --help
~~~

- Check that the directory holding the program is on your PATH:
~~~
$ echo "$PATH"
~~~

- Make sure the program is executable:
~~~
$ chmod +x /path/to/toolforge-<name>
~~~`,
		docLinks: []HttpLink{helpLink},
	}

	execFailedIssue = &Issue{
		id: ExecFailedId,
		mdMsg: `
# Subcommand could not be started!

The program was found on your PATH but the operating system refused to run it.

## Common causes:
- The file was removed or replaced after toolforge looked for it
- Execute permission was revoked
- The interpreter named on its ` + "`#!`" + ` line does not exist
- The binary was built for another CPU architecture

## Things you can try:
- Run the program directly to see the underlying error
- Reinstall the package that provides it`,
		docLinks: []HttpLink{helpLink},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

One of the toolforge configuration files could not be read or does not match
the expected format. Files are read in this order, later ones override earlier ones:

1. /etc/toolforge-cli.yaml
2. ~/.toolforge.yaml
3. ~/.config/toolforge.yaml
4. $XDG_CONFIG_HOME/toolforge.yaml

## Things you can try:
- Check the YAML syntax of the file named above
- Show the files toolforge reads:
~~~
$ toolforge config path
~~~

- Start over from the defaults:
~~~
$ toolforge config init
~~~

## Valid keys:
~~~yaml
toolforge_prefix: toolforge-
exec_mode: exec    # or spawn
ui:
  verbose: false
  debug: false
  color_scheme: auto   # dark, light
~~~`,
	}

	invalidPrefixIssue = &Issue{
		id: InvalidPrefixId,
		mdMsg: `
# Invalid subcommand prefix!

The prefix selects which programs on PATH become subcommands. It must not be
empty and must not contain a path separator.

## Things you can try:
- Fix ` + "`toolforge_prefix`" + ` in your configuration file
- Unset the override:
~~~
$ unset TOOLFORGE_CLI_PREFIX
~~~`,
	}

	issues = map[Id]*Issue{
		commandNotFoundIssue.Id():  commandNotFoundIssue,
		execFailedIssue.Id():       execFailedIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		invalidPrefixIssue.Id():    invalidPrefixIssue,
	}
)

// Values returns every catalog issue ordered by Id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}
