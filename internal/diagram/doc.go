// Package diagram turns persistence pairs into a birth/death scatter plot.
//
// Build selects and lays out the data: finite pairs become one series per
// homology dimension, essential pairs are drawn as triangles just above the
// upper bound, and the axes are squared so the diagonal reads at 45 degrees.
// Render draws a Plan with gonum/plot.
package diagram
