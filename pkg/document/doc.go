/*
Package document loads and validates decision tree documents.

A document is a mapping from node key to node object:

	start:
	  query: q_start
	  options:
	    - { label: opt_fraud, value: fraud, nextStep: fraudType }
	    - { label: opt_other, value: Other }
	aiChatStart:
	  query: q_ai
	  options: []

JSON and YAML sources are both accepted. Every document must define "start" and
"aiChatStart", every option needs a value, and every nextStep must name an existing node.
*/
package document
