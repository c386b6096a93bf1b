package synth

import (
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

// CLICommandTreeSynthesizer mirrors the hierarchy forest into a command
// tree: each dotted prefix is a command group, each operation a leaf
// command whose flags come from its input fields.
type CLICommandTreeSynthesizer struct{}

const cliTreeGeneratorID = "cli_command_tree"
const cliTreeVersion = "1.0.0"

func (CLICommandTreeSynthesizer) ID() string      { return cliTreeGeneratorID }
func (CLICommandTreeSynthesizer) Version() string { return cliTreeVersion }

func (s CLICommandTreeSynthesizer) Produce(in Inputs) ([]model.ArtifactRecord, error) {
	var b strings.Builder
	b.WriteString("# Code generated by the artifact synthesizer. DO NOT EDIT.\n\n")

	var relevant []string
	for _, rootName := range in.Graph.Hierarchy.RootOrder {
		writeCommandGroup(&b, in.Graph.Hierarchy.Roots[rootName], 0, in.Registry, &relevant)
	}
	sort.Strings(relevant)

	rec, err := fingerprintRecord(
		model.ArtifactRecord{RelativePath: "cli/commands.txt", Content: []byte(b.String())},
		cliTreeGeneratorID, cliTreeVersion, "", relevant,
	)
	if err != nil {
		return nil, err
	}
	return []model.ArtifactRecord{rec}, nil
}

func writeCommandGroup(b *strings.Builder, node *graph.FlowNode, depth int, reg *registry.Registry, relevant *[]string) {
	indent := strings.Repeat("  ", depth)
	if node.IsLeaf {
		op, _ := reg.GetOperation(node.Operation)
		b.WriteString(indent + "command " + node.Name + "\n")
		if op != nil {
			for _, f := range op.InputFields {
				b.WriteString(indent + "  --" + f.Name + " " + f.TypeName + "\n")
				*relevant = append(*relevant, "field:"+node.Operation+":"+f.Name+":"+f.TypeName)
			}
		}
		*relevant = append(*relevant, "operation:"+node.Operation)
		return
	}

	b.WriteString(indent + "group " + node.Name + "\n")
	for _, child := range node.OrderedChildren() {
		writeCommandGroup(b, child, depth+1, reg, relevant)
	}
}
