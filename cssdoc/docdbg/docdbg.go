/*
Package docdbg implements helpers to debug a stylesheet document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package docdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/cssed/cssdoc"
	"github.com/xlab/treeprint"
)

// Dump returns an indented text rendering of a document, one node per line.
func Dump(doc *cssdoc.Document) string {
	t := treeprint.New()
	t.SetValue("stylesheet")
	for _, e := range doc.Entries() {
		branch(t, e)
	}
	return t.String()
}

func branch(t treeprint.Tree, n *cssdoc.Node) {
	if n.Kind().IsLeaf() {
		t.AddNode(n.String())
		return
	}
	b := t.AddBranch(n.String())
	for _, ch := range n.ChildNodes() {
		branch(b, ch)
	}
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a document tree. The diagram is in
// GraphViz (DOT) format. Committed tokens are drawn highlighted.
func ToGraphViz(doc *cssdoc.Document, w io.Writer) {
	tmpl, err := template.New("doc").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("docnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(docNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("docedge").Parse(docEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		panic(err)
	}
	nodes(doc.Root(), w, &gparams)
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a document and a testing.T, it will
// create a Graphiviz image of the document tree and write it to a file in
// the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(doc *cssdoc.Document, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "cssdoc.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing document digraph to %s\n", tmpfile.Name())
	ToGraphViz(doc, tmpfile)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *cssdoc.Node
	Name string
}

type edge struct {
	N1, N2 node
}

func nodes(n *cssdoc.Node, w io.Writer, gparams *graphParamsType) {
	docNode(n, w, gparams)
	for _, ch := range n.ChildNodes() {
		nodes(ch, w, gparams)
		e := edge{node{n, nodeName(n)}, node{ch, nodeName(ch)}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			panic(err)
		}
	}
}

func docNode(n *cssdoc.Node, w io.Writer, gparams *graphParamsType) {
	if err := gparams.NodeTmpl.Execute(w, &node{n, nodeName(n)}); err != nil {
		panic(err)
	}
}

// Node IDs are unique, so we do not need a dictionary of names.
func nodeName(n *cssdoc.Node) string {
	return fmt.Sprintf("node%05d", n.ID())
}

func shortText(n *cssdoc.Node) string {
	t := n.Text()
	s := "\"\\\""
	if len(t) > 16 {
		s += t[:16] + "...\\\"\""
	} else {
		s += t + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const docNodeTmpl = `{{ if .N.Kind.IsLeaf }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor={{ if .N.Committed }}palegreen{{ else }}grey95{{ end }} fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.Kind.String }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const docEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
