package poem

import "strings"

// SamplePoems returns built-in poems used when PoetryDB is unreachable or
// offline operation is requested.
func SamplePoems(count int) []Poem {
	samples := []Poem{
		{
			Title:  "The Road Not Taken",
			Author: "Robert Frost",
			Text: `Two roads diverged in a yellow wood,
And sorry I could not travel both
And be one traveler, long I stood
And looked down one as far as I could
To where it bent in the undergrowth;

Then took the other, as just as fair,
And having perhaps the better claim,
Because it was grassy and wanted wear;
Though as for that the passing there
Had worn them really about the same,

And both that morning equally lay
In leaves no step had trodden black.
Oh, I kept the first for another day!
Yet knowing how way leads on to way,
I doubted if I should ever come back.

I shall be telling this with a sigh
Somewhere ages and ages hence:
Two roads diverged in a wood, and I—
I took the one less traveled by,
And that has made all the difference.`,
			LineCount: 20,
			Source:    "Sample Data",
		},
		{
			Title:  "Sonnet 18",
			Author: "William Shakespeare",
			Text: `Shall I compare thee to a summer's day?
Thou art more lovely and more temperate:
Rough winds do shake the darling buds of May,
And summer's lease hath all too short a date;
Sometime too hot the eye of heaven shines,
And often is his gold complexion dimm'd;
And every fair from fair sometime declines,
By chance or nature's changing course untrimm'd;
But thy eternal summer shall not fade
Nor lose possession of that fair thou owest;
Nor shall Death brag thou wander'st in his shade,
When in eternal lines to time thou growest:
So long as men can breathe or eyes can see,
So long lives this, and this gives life to thee.`,
			LineCount: 14,
			Source:    "Sample Data",
		},
		{
			Title:  "I Wandered Lonely as a Cloud",
			Author: "William Wordsworth",
			Text: `I wandered lonely as a cloud
That floats on high o'er vales and hills,
When all at once I saw a crowd,
A host, of golden daffodils;
Beside the lake, beneath the trees,
Fluttering and dancing in the breeze.

Continuous as the stars that shine
And twinkle on the milky way,
They stretched in never-ending line
Along the margin of a bay:
Ten thousand saw I at a glance,
Tossing their heads in sprightly dance.

The waves beside them danced; but they
Out-did the sparkling waves in glee:
A poet could not but be gay,
In such a jocund company:
I gazed—and gazed—but little thought
What wealth the show to me had brought:

For oft, when on my couch I lie
In vacant or in pensive mood,
They flash upon that inward eye
Which is the bliss of solitude;
And then my heart with pleasure fills,
And dances with the daffodils.`,
			LineCount: 24,
			Source:    "Sample Data",
		},
	}

	for i := range samples {
		samples[i].WordCount = len(strings.Fields(samples[i].Text))
	}

	if count <= 0 || count > len(samples) {
		count = len(samples)
	}
	return samples[:count]
}
