package engine

// ShortestPath finds the tile sequence from start to goal with the fewest moves.
// Each tile links to the next tile and, when it is a ladder source, to the ladder top.
// The forward link is explored first so it wins ties. If goal cannot be reached the
// result is just [start].
func ShortestPath(start, goal, tileCount int, ladders map[int]int) []int {
	parent := map[int]int{}
	visited := map[int]bool{start: true}
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			break
		}

		neighbors := make([]int, 0, 2)
		if cur+1 <= tileCount {
			neighbors = append(neighbors, cur+1)
		}
		if to, ok := ladders[cur]; ok {
			neighbors = append(neighbors, to)
		}

		for _, nb := range neighbors {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}

	if !visited[goal] {
		return []int{start}
	}

	// Walk parents back from goal
	path := []int{goal}
	for cur := goal; cur != start; {
		prev, ok := parent[cur]
		if !ok {
			return []int{start}
		}
		path = append(path, prev)
		cur = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// isLadderEdge reports whether moving from -> to uses a ladder rather than a single step
func isLadderEdge(from, to int, ladders map[int]int) bool {
	dest, ok := ladders[from]
	return ok && dest == to && to != from+1
}
