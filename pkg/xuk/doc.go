/*
Package xuk implements the XUK interchange format: a recursive, QName-addressed XML
encoding for the document model.

Every persistable object implements [Able]. The engine functions [In] and [Out] drive
the per-object hooks: attributes first, then child elements, depth-first. Polymorphic
children are reconstructed through a [Factory] keyed on the element's [QName] instead of
reflection, so new variants are added by registering a constructor.

# Cancellation

A [Progress] callback is polled at element boundaries. When it requests cancellation the
current read or write stops with an error wrapping [ErrProgressCancelled]. Nothing written
or read up to that point is rolled back; callers must discard the stream.
*/
package xuk
