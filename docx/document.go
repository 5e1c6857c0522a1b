package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Only paragraphs participate in the
// flat document model; tables and other block content are ignored.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
	Hyperlinks []hyperlinkXML    `xml:"hyperlink"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style styleRefXML       `xml:"pStyle"`
	NumPr numberingPropsXML `xml:"numPr"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  valXML `xml:"ilvl"`
	NumID valXML `xml:"numId"`
}

// valXML represents a simple element with a val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName    xml.Name    `xml:"r"`
	Properties runPropsXML `xml:"rPr"`
	// Content holds text, breaks, and tabs in document order.
	Content []runContentXML `xml:",any"`
	Drawing []drawingXML    `xml:"drawing"`
}

// runContentXML captures one child of a run, preserving order so that line
// breaks land between the right pieces of text.
type runContentXML struct {
	XMLName xml.Name
	Space   string `xml:"space,attr"`
	Value   string `xml:",chardata"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      *boolXML     `xml:"b"`
	Italic    *boolXML     `xml:"i"`
	Underline underlineXML `xml:"u"`
	FontSize  valXML       `xml:"sz"`
	Color     valXML       `xml:"color"`
}

// boolXML represents a boolean toggle property.
type boolXML struct {
	Val string `xml:"val,attr"`
}

// set reports whether a toggle property is present and not explicitly off.
func (b *boolXML) set() bool {
	if b == nil {
		return false
	}
	return b.Val != "false" && b.Val != "0" && b.Val != "none"
}

// underlineXML represents underline style.
type underlineXML struct {
	Val string `xml:"val,attr"` // single, double, none, etc.
}

func (u underlineXML) set() bool {
	return u.Val != "" && u.Val != "none"
}

// drawingXML represents an embedded drawing/image.
type drawingXML struct {
	XMLName xml.Name `xml:"drawing"`
	Blips   []blipReferenceXML
}

// UnmarshalXML collects every a:blip reference inside the drawing, whether
// the image is inline or anchored.
func (d *drawingXML) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	d.XMLName = start.Name
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "blip" {
				var blip blipReferenceXML
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						blip.Embed = attr.Value
					}
				}
				d.Blips = append(d.Blips, blip)
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// blipReferenceXML represents an image reference.
type blipReferenceXML struct {
	Embed string // Relationship ID
}

// hyperlinkXML represents a hyperlink; only its runs matter for content.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// stylesXML represents word/styles.xml, reduced to style identification.
type stylesXML struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []styleXML `xml:"style"`
}

type styleXML struct {
	ID   string `xml:"styleId,attr"`
	Name valXML `xml:"name"`
}

// numberingXML represents word/numbering.xml, reduced to numId -> format.
type numberingXML struct {
	XMLName      xml.Name          `xml:"numbering"`
	AbstractNums []abstractNumXML  `xml:"abstractNum"`
	Nums         []numXML          `xml:"num"`
}

type abstractNumXML struct {
	ID     string   `xml:"abstractNumId,attr"`
	Levels []lvlXML `xml:"lvl"`
}

type lvlXML struct {
	ILvl   string `xml:"ilvl,attr"`
	NumFmt valXML `xml:"numFmt"`
}

type numXML struct {
	ID          string `xml:"numId,attr"`
	AbstractNum valXML `xml:"abstractNumId"`
}

// relationshipsXML represents word/_rels/document.xml.rels.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
