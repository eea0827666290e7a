/*
Package flows provides the decoded flow record and the sources producing them.

Records

A Record is a read-only view of a single decoded flow or event record. Every record carries a
RecordTag naming the export dialect it was decoded from:

	generic  plain NetFlow/IPFIX flow records
	nsel     security event records with firewall events
	nel      NAT event records

Attributes that do not exist in a dialect are returned as zero values; renderers use the tag to
decide whether an attribute is meaningful. FlowRecord is a Record backed by plain struct fields.

Timestamps are DateTimeMilliseconds (milliseconds since the unix epoch, see ToTime and FromTime).

Information elements

The IE variables name the IPFIX information elements of the record attributes. Sources use the
element names as input keys. Variants maps a combined name like sourceIPAddress to its IPv4 and
IPv6 elements.

Sources

Sources are modules (see util) registered with RegisterSource and created with MakeSource.
Sources chains several sources and reads them one after another.
*/
package flows
