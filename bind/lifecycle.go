package bind

// Lifecycle is implemented by components that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Parent is implemented by components with child components.
type Parent interface {
	Children() []Lifecycle
}

// MountTree mounts root and then its children, depth first.
func MountTree(root Lifecycle) {
	if root == nil {
		return
	}
	root.Mount()
	if p, ok := root.(Parent); ok {
		for _, child := range p.Children() {
			MountTree(child)
		}
	}
}

// UnmountTree unmounts children before their parent.
func UnmountTree(root Lifecycle) {
	if root == nil {
		return
	}
	if p, ok := root.(Parent); ok {
		for _, child := range p.Children() {
			UnmountTree(child)
		}
	}
	root.Unmount()
}

// Group mounts and unmounts a fixed set of components together.
type Group []Lifecycle

// Mount mounts every member in order.
func (g Group) Mount() {
	for _, c := range g {
		MountTree(c)
	}
}

// Unmount unmounts every member in reverse order.
func (g Group) Unmount() {
	for i := len(g) - 1; i >= 0; i-- {
		UnmountTree(g[i])
	}
}
