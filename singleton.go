package alembic

// singletonScope is the process-wide cache backing Singleton-scoped bindings.
// It is independent of any container: two containers resolving the same key
// under Singleton scope observe the same instance. It is never reset
// implicitly; containers skip it during ResetAll.
var singletonScope = newStrongScope()

// ResetSingletons discards every Singleton-scoped instance in the process.
// The next resolution of each key constructs a fresh instance.
func ResetSingletons() {
	singletonScope.Reset()
}
