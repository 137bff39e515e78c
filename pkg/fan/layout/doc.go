// Package layout computes where each item of a fan should sit.
//
// Calculate is a pure function of an ordered list of entries and a Config
// snapshot. It places items either along a straight horizontal row (linear
// mode) or along the arc of a circle whose center lies below the container
// (arc mode). Linear mode is selected when MinRadius is not positive or when
// fewer than two items are laid out.
//
// # Arc Mode
//
// The radius is the larger of MinRadius and the radius at which the items,
// spaced Spacing apart along the arc, span exactly MaxAngle degrees. When the
// resulting fan would spill out of the container horizontally, the half-angle
// shrinks until the outermost bounding boxes fit and the spacing is
// recomputed from it. Angles run counter-clockwise and the first item sits
// furthest to the left.
//
// # Coordinates
//
// The origin is at the bottom-left of the container and y points up. Each
// Transform reports the lower-left corner of the item's rotated bounding box;
// hosts rotate items about the center of that box.
//
// # Lifting
//
// Lifted indices are offset by Lift along their own up vector, so a lifted
// item on a tilted slot moves outward from the arc rather than straight up.
package layout
