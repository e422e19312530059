// Package page decodes JSON documents that describe markup and renders them
// with package wand.
//
// A document has an optional doctype flag and a root node:
//
//	{
//	  "doctype": true,
//	  "root": {
//	    "tag": "html",
//	    "content": [
//	      {"tag": "head", "content": [{"tag": "title", "text": "Hello"}]},
//	      {"tag": "body", "content": [
//	        {"tag": "div", "attrs": {"class": "card"}, "content": ["<b>raw</b>"]},
//	        {"tag": "input", "attrs": [{"type": "checkbox"}, "checked"]}
//	      ]}
//	    ]
//	  }
//	}
//
// A node maps onto a single wand.Tag call. "attrs" is the attribute set: a
// JSON object holds named attributes in document order, and an array holds
// a mix of bare strings (positional attributes) and one-key objects (named
// attributes). "text" is escaped and becomes the first content fragment.
// "content" holds raw markup strings and child nodes. A node with neither
// text nor content self-closes, exactly as wand.Tag does.
package page
