package shell

import (
	"embed"
	"errors"
)

//go:embed helptext
var helptext embed.FS

func usage(topic string) (*Response, error) {
	if topic == "" {
		topic = "usage"
	}
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return nil, errors.New("there is no help text for the topic " + topic)
	}
	return msg(string(dat)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("")
	}
	return usage(cmd.args[0])
}
