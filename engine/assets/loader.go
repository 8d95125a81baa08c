package assets

import "github.com/spaghettifunk/blitz/engine/assets/loaders"

type Loader interface {
	Load(path string) (*loaders.Resource, error) // Resource.Data holds the decoded asset, its type depends on the loader
	Unload(*loaders.Resource) error
}
