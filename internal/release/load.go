package release

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// FromJSON builds a Context from a JSON document shaped like the orchestrator
// context: lastRelease, nextRelease, branch (an object with a name or a plain
// string) and env. The whole document is kept as the template variable base.
func FromJSON(doc string) (*Context, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("invalid release context: not a JSON document")
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return nil, fmt.Errorf("invalid release context: expected a JSON object")
	}

	ctx := &Context{
		LastRelease: releaseFrom(root.Get("lastRelease")),
		NextRelease: releaseFrom(root.Get("nextRelease")),
		Extra:       root.Raw,
	}

	switch branch := root.Get("branch"); branch.Type {
	case gjson.String:
		ctx.Branch = &Branch{Name: branch.String()}
	case gjson.JSON:
		if name := branch.Get("name"); name.Exists() {
			ctx.Branch = &Branch{Name: name.String()}
		}
	}

	if env := root.Get("env"); env.IsObject() {
		ctx.Env = make(map[string]string)
		env.ForEach(func(key, value gjson.Result) bool {
			ctx.Env[key.String()] = value.String()
			return true
		})
	}

	return ctx, nil
}

func releaseFrom(r gjson.Result) *Release {
	if !r.IsObject() {
		return nil
	}
	return &Release{
		Version: r.Get("version").String(),
		GitHead: r.Get("gitHead").String(),
		GitTag:  r.Get("gitTag").String(),
		Notes:   r.Get("notes").String(),
		Type:    r.Get("type").String(),
		Channel: r.Get("channel").String(),
	}
}
