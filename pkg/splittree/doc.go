// Package splittree records the recursion of one subdivision and exports it as
// a Graphviz diagram.
//
// Every internal node is a split, listed with its parts in visiting order, and
// every leaf carries the color it was painted with. The diagram is a debugging
// aid for reasoning about why a picture looks the way it does:
//
//	img := canvas.New(600, 600)
//	root, _ := splittree.Build(img, mondrian.ModeBasic, mondrian.NewRand(42))
//	svg, err := splittree.Render(splittree.ToDOT(root, splittree.Options{MaxDepth: 4}), splittree.FormatSVG)
//
// Rendering uses github.com/goccy/go-graphviz, which embeds Graphviz compiled to
// WebAssembly, so no system binary is required.
package splittree
