package core

import "errors"

var (
	// ErrNilArgument is returned when a required argument is nil or empty.
	ErrNilArgument = errors.New("argument is nil or empty")

	// ErrPropertyAlreadyHasOwner is returned when attaching a property that is
	// already attached to a node.
	ErrPropertyAlreadyHasOwner = errors.New("property already has an owner")

	// ErrPropertyCannotBeAddedToTreeNode is returned when a property refuses the
	// node, typically because the node already has a property of the same type.
	ErrPropertyCannotBeAddedToTreeNode = errors.New("property cannot be added to tree node")

	// ErrChannelAlreadyExists is returned when registering a registered channel.
	ErrChannelAlreadyExists = errors.New("channel already exists")

	// ErrChannelDoesNotExist is returned for channels unknown to the registry.
	ErrChannelDoesNotExist = errors.New("channel does not exist")

	// ErrMediaTypeIsIllegal is returned when a channel does not support a media's type.
	ErrMediaTypeIsIllegal = errors.New("media type is illegal for channel")

	// ErrNodeAlreadyHasParent is returned when inserting a node that is still attached.
	ErrNodeAlreadyHasParent = errors.New("node already has a parent")

	// ErrNodeNotChild is returned when a node is not a child of the receiver.
	ErrNodeNotChild = errors.New("node is not a child")

	// ErrNodeIsAncestor is returned when an insertion would create a cycle.
	ErrNodeIsAncestor = errors.New("node is an ancestor of the insertion point")

	// ErrIndexOutOfBounds is returned for child indices outside the valid range.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrPresentationMismatch is returned when combining objects created by
	// different presentations.
	ErrPresentationMismatch = errors.New("objects belong to different presentations")
)
