package bbgraph

import (
	"github.com/emirpasic/gods/maps/hashmap"
)

// blockScratch holds the two maps that live only for the duration of a
// single AddBlock call: which node currently represents each register
// name, and which node currently represents each memory alias-group. Both
// are cleared, not reallocated, at the start of every block, since a
// Builder processes many blocks over its lifetime and the maps' backing
// storage is worth keeping.
type blockScratch struct {
	registerNodes   *hashmap.Map // string -> NodeIndex
	aliasGroupNodes *hashmap.Map // int64 -> NodeIndex
}

func newBlockScratch() *blockScratch {
	return &blockScratch{
		registerNodes:   hashmap.New(),
		aliasGroupNodes: hashmap.New(),
	}
}

func (s *blockScratch) clear() {
	s.registerNodes.Clear()
	s.aliasGroupNodes.Clear()
}

func (s *blockScratch) register(name string) (NodeIndex, bool) {
	v, found := s.registerNodes.Get(name)
	if !found {
		return InvalidNodeIndex, false
	}
	return v.(NodeIndex), true
}

func (s *blockScratch) setRegister(name string, node NodeIndex) {
	s.registerNodes.Put(name, node)
}

func (s *blockScratch) aliasGroup(id int64) (NodeIndex, bool) {
	v, found := s.aliasGroupNodes.Get(id)
	if !found {
		return InvalidNodeIndex, false
	}
	return v.(NodeIndex), true
}

func (s *blockScratch) setAliasGroup(id int64, node NodeIndex) {
	s.aliasGroupNodes.Put(id, node)
}
