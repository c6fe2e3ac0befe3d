package bootstrap

import (
	"fmt"

	"github.com/viant/asenabuild/inspector/locator"
)

// DefaultPort is the port used by generated bootstrap blocks
const DefaultPort = 3000

// Template describes an empty bootstrap block
type Template struct {
	Adapter string // Adapter variable name
	Logger  string // Logger variable name
	Port    int
	Shape   locator.Shape
	Factory string // Factory namespace, defaults to locator.DefaultFactory
	Server  string // Legacy server class, defaults to locator.DefaultServer
}

// Empty renders a bootstrap block without components
func Empty(t Template) string {
	if t.Port == 0 {
		t.Port = DefaultPort
	}
	if t.Shape == locator.LegacyChain {
		server := t.Server
		if server == "" {
			server = locator.DefaultServer
		}
		return fmt.Sprintf("\nawait new %s(%s, %s).port(%d).start();", server, t.Adapter, t.Logger, t.Port)
	}
	factory := t.Factory
	if factory == "" {
		factory = locator.DefaultFactory
	}
	return fmt.Sprintf(`
const server = await %s.create({
  adapter: %s,
  logger: %s,
  port: %d
});

await server.start();`, factory, t.Adapter, t.Logger, t.Port)
}
