// Package surface provides host drawing targets for volumetric scenes.
// Headless records presented frames off-screen.
package surface
