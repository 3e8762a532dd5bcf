package player

// EnterInteractable adds i to the proximity list once. The list stays
// ordered by descending priority; equal priorities keep arrival order.
func (c *Controller) EnterInteractable(i Interactable) {
	for _, existing := range c.interactables {
		if existing == i {
			return
		}
	}
	at := len(c.interactables)
	for idx, existing := range c.interactables {
		if i.InteractionPriority() > existing.InteractionPriority() {
			at = idx
			break
		}
	}
	c.interactables = append(c.interactables, nil)
	copy(c.interactables[at+1:], c.interactables[at:])
	c.interactables[at] = i
}

// ExitInteractable removes i from the proximity list if present.
func (c *Controller) ExitInteractable(i Interactable) {
	for idx, existing := range c.interactables {
		if existing == i {
			c.interactables = append(c.interactables[:idx], c.interactables[idx+1:]...)
			return
		}
	}
}

// Interactables returns the proximity list, head first.
func (c *Controller) Interactables() []Interactable {
	return c.interactables
}

// Interact acts on the head of the proximity list, then removes it if the
// interaction did not already do so.
func (c *Controller) Interact() {
	if len(c.interactables) == 0 || !c.Body.Active() {
		return
	}
	head := c.interactables[0]
	head.Interact()
	c.ExitInteractable(head)
}
