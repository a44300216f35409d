package models

// FileKind enumerates the file-like node labels the graph may carry. The
// closed set replaces runtime label-string stripping: each variant declares
// its label and the display name used in rendered context sentences.
type FileKind int

const (
	FileKindGeneric FileKind = iota
	FileKindSource
	FileKindPython
	FileKindJavaScript
	FileKindCobol
	FileKindSas
	FileKindJcl
	FileKindFlink
	FileKindData
	FileKindCpp
	FileKindFortran
	FileKindPli
	FileKindAssembly
	FileKindRpg
)

type fileKindInfo struct {
	label   string
	display string
}

var fileKinds = map[FileKind]fileKindInfo{
	FileKindGeneric:    {label: "File", display: "file"},
	FileKindSource:     {label: "SourceFile", display: "source"},
	FileKindPython:     {label: "PythonModule", display: "python"},
	FileKindJavaScript: {label: "JavaScriptModule", display: "javascript"},
	FileKindCobol:      {label: "CobolProgram", display: "cobol"},
	FileKindSas:        {label: "SasProgram", display: "sas"},
	FileKindJcl:        {label: "JclJob", display: "jcl"},
	FileKindFlink:      {label: "FlinkJob", display: "flink"},
	FileKindData:       {label: "DataFile", display: "data"},
	FileKindCpp:        {label: "CppFile", display: "cpp"},
	FileKindFortran:    {label: "FortranProgram", display: "fortran"},
	FileKindPli:        {label: "PliProgram", display: "pli"},
	FileKindAssembly:   {label: "AssemblyFile", display: "assembly"},
	FileKindRpg:        {label: "RpgProgram", display: "rpg"},
}

var fileKindByLabel = func() map[string]FileKind {
	m := make(map[string]FileKind, len(fileKinds))
	for kind, info := range fileKinds {
		m[info.label] = kind
	}
	return m
}()

// Label returns the Neo4j label for the kind.
func (k FileKind) Label() string {
	return fileKinds[k].label
}

// Display returns the lowercase name used when rendering file context, e.g.
// "The python file 'app.py' is part of repository 'x'."
func (k FileKind) Display() string {
	return fileKinds[k].display
}

// FileKindFromLabels picks the most specific kind from a node's labels: the
// first label that is not the generic "File". Unknown label sets fall back
// to the generic kind.
func FileKindFromLabels(labels []string) FileKind {
	for _, label := range labels {
		if label == fileKinds[FileKindGeneric].label {
			continue
		}
		if kind, ok := fileKindByLabel[label]; ok {
			return kind
		}
	}
	return FileKindGeneric
}

// FileLabels returns every label in the closed file-kind set, generic kind
// first. Queries that match "any file-like node" build their label
// disjunction from this list.
func FileLabels() []string {
	labels := make([]string, 0, len(fileKinds))
	labels = append(labels, fileKinds[FileKindGeneric].label)
	for kind := FileKindGeneric + 1; int(kind) < len(fileKinds); kind++ {
		labels = append(labels, fileKinds[kind].label)
	}
	return labels
}

// FileContext is a file-stage lookup result: the file's location, owning
// repository and resolved kind.
type FileContext struct {
	Path   string
	RepoID string
	Kind   FileKind
}
