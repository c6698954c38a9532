// Package knowledge provides an in-memory knowledge base of explanatory
// articles keyed by probe ID and verdict.
//
// Base implements probe.KnowledgeBase. Default returns a base preloaded with
// articles for the built-in probes; Load reads additional articles from YAML:
//
//	articles:
//	  - probe: BlockedConnectionProbe
//	    status: unhealthy
//	    reason: The broker blocked the connection from publishing.
//	    remediation: Investigate memory and disk alarms on the node.
//
// A Base is safe for concurrent use.
package knowledge
