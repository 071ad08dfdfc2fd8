/*
Package yamlasset reads and writes machine trees as YAML documents.

A document nests machines and states the way they are nested in the tree. Nodes carry an id
(defaulting to their name) and edges point at ids:

	name: Locomotion
	default: Idle
	states:
	  - name: Idle
	    transitions:
	      - to: Walk
	        conditions: [{mode: greater, parameter: Speed, threshold: 0.1}]
	  - name: Walk
	machines:
	  - name: Emotes
	    states:
	      - name: Wave
	        transitions: [{exit: true, has_exit_time: true, exit_time: 1}]
	  - ref: Locomotion

A child entry holding only "ref" links a node declared elsewhere in the document, which is how
shared and cyclic structure is written. An edge naming an unknown id is kept as a reference to a
detached placeholder node, the way an asset pointing outside its own tree behaves.
*/
package yamlasset
