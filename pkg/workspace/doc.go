/*
Package workspace serializes access to stored projects.

A Manager wraps a urakawa.Repository and guarantees that at most one caller
edits a given document at a time. Within a process this is a reference-counted
mutex per document ID; across replicas an optional ports.DistributedLocker
(for example the Redis locker) is taken as well.

The object model itself is not safe for concurrent use, so editing goes
through Edit, which loads, mutates and saves while holding the lock:

	err := mgr.Edit(ctx, "book", func(pr *core.Project) error {
		p, err := pr.Presentation(0)
		if err != nil {
			return err
		}
		return p.RootNode().AppendChild(p.NewTreeNode())
	})
*/
package workspace
