package gitio

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing/filemode"

	"github.com/schani/git-lineage-sub000/internal/errkind"
)

// FileTreeNode is one entry of a recursively materialised tree: a file
// (IsDir false, no Children) or a directory (IsDir true, Children sorted
// with subdirectories first, then by name).
type FileTreeNode struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	IsDir    bool           `json:"is_dir"`
	Children []FileTreeNode `json:"children,omitempty"`
}

// FileTreeAt builds the full recursive file tree rooted at the tree
// identified by treeID. The root node's Name and Path are empty.
func (r *Repo) FileTreeAt(treeID Oid) (FileTreeNode, error) {
	children, err := r.treeChildren(treeID, "")
	if err != nil {
		return FileTreeNode{}, err
	}
	return FileTreeNode{IsDir: true, Children: children}, nil
}

// FileTreeAtHead is sugar for FileTreeAt(head's tree).
func (r *Repo) FileTreeAtHead() (FileTreeNode, error) {
	head, err := r.HeadID()
	if err != nil {
		return FileTreeNode{}, err
	}
	meta, err := r.Commit(head)
	if err != nil {
		return FileTreeNode{}, err
	}
	return r.FileTreeAt(meta.Tree)
}

func (r *Repo) treeChildren(treeID Oid, prefix string) ([]FileTreeNode, error) {
	tree, err := r.raw.TreeObject(treeID.Hash())
	if err != nil {
		return nil, errkind.Wrap(errkind.Corrupt, "decode tree "+treeID.String(), err)
	}

	nodes := make([]FileTreeNode, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		path := entry.Name
		if prefix != "" {
			path = prefix + "/" + entry.Name
		}

		if entry.Mode == filemode.Dir {
			children, err := r.treeChildren(OidFromHash(entry.Hash), path)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, FileTreeNode{Name: entry.Name, Path: path, IsDir: true, Children: children})
			continue
		}
		if entry.Mode == filemode.Submodule {
			continue // submodule gitlinks are not blobs this core can read
		}
		nodes = append(nodes, FileTreeNode{Name: entry.Name, Path: path})
	}

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir // directories before files
		}
		return nodes[i].Name < nodes[j].Name
	})
	return nodes, nil
}
