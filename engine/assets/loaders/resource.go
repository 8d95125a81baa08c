package loaders

/** @brief The kind of file a loader produces. */
type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	/** @brief A Wavefront OBJ mesh, decoded into MeshData. */
	ResourceTypeMesh
	/** @brief A raw RGBA pixel grid, e.g. a map height image. */
	ResourceTypeImage
	/** @brief An image decoded for sampling. */
	ResourceTypeTexture
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeTexture:
		return "texture"
	}
	return "none"
}

/**
 * @brief The output of a loader.
 */
type Resource struct {
	Name     string
	FullPath string
	Type     ResourceType
	DataSize uint64
	// *MeshData, *PixelData or *image.NRGBA depending on Type.
	Data interface{}
}
