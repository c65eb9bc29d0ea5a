/*
Package observability exports Prometheus metrics for edits made to a document.

A Collector subscribes to the event buses of an undo.Manager and of a
core.Presentation and counts what happens on them:

	c := observability.NewCollector(prometheus.DefaultRegisterer)
	detach := c.AttachPresentation(p)
	defer detach()

Collectors never alter the observed objects; detaching removes the
subscriptions again.
*/
package observability
