package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/mwhitby/kinship/internal/domain"
)

// IdentityRecord is one row of the identity file.
type IdentityRecord struct {
	Name       string
	ID         int
	Sex        string
	OtherNames string
	BestDOB    string
	BirthYear  string
	DeathYear  string
	FatherName string
	FatherID   string
	MotherName string
	MotherID   string
	Legitimacy string
}

// MarriageRecord is one row of the marriage file.
type MarriageRecord struct {
	HusbandName string
	HusbandID   int
	WifeName    string
	WifeID      int
	Type        string
	Date        string
	FirstChild  string
	DivorceDate string
	WidowDate   string
}

// MasterRecord is one row of the master sheet: the household an individual
// belonged to at each census wave plus the household wealth quartile.
type MasterRecord struct {
	ID         int
	Households map[int]string
	Wealth     map[int]string
}

// Dataset contains the generated survey files.
type Dataset struct {
	Identities []IdentityRecord
	Marriages  []MarriageRecord
	Master     []MasterRecord
}

type person struct {
	id        int
	name      string
	sex       string
	birthYear int
	deathYear int
	father    *person
	mother    *person
	spouse    *person
	marriage  int
	household string
	emigrated int
}

func (p *person) aliveIn(year int) bool {
	return p.birthYear <= year && (p.deathYear == 0 || p.deathYear > year)
}

// Generator produces a synthetic multi-generation village aligned with the
// survey file schemas.
type Generator struct {
	cfg    Config
	rand   *rand.Rand
	nextID int
	names  namePools
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.FounderCouples <= 0 {
		cfg.FounderCouples = DefaultConfig().FounderCouples
	}
	if cfg.Generations <= 0 {
		cfg.Generations = DefaultConfig().Generations
	}
	if cfg.MaxChildren <= 0 {
		cfg.MaxChildren = DefaultConfig().MaxChildren
	}
	if cfg.MarriageChance <= 0 {
		cfg.MarriageChance = DefaultConfig().MarriageChance
	}
	if cfg.FissionChance <= 0 {
		cfg.FissionChance = DefaultConfig().FissionChance
	}
	if cfg.EmigrationChance <= 0 {
		cfg.EmigrationChance = DefaultConfig().EmigrationChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:    cfg,
		rand:   rand.New(rand.NewSource(cfg.Seed)),
		nextID: 1,
		names:  defaultNamePools(),
	}
}

// Generate synthesises the village. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	var people []*person
	var generation []*person

	for i := 0; i < g.cfg.FounderCouples; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		household := strconv.Itoa(i + 1)
		husband := g.newPerson("MALE", 1900+g.rand.Intn(20), nil, nil)
		wife := g.newPerson("FEMALE", husband.birthYear-3+g.rand.Intn(7), nil, nil)
		g.marry(husband, wife)
		husband.household = household
		wife.household = household

		people = append(people, husband, wife)
		generation = append(generation, husband, wife)
	}

	for gen := 1; gen < g.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		var next []*person
		for _, p := range generation {
			if p.sex != "MALE" || p.spouse == nil {
				continue
			}
			count := g.rand.Intn(g.cfg.MaxChildren + 1)
			for c := 0; c < count; c++ {
				sex := "MALE"
				if g.rand.Intn(2) == 0 {
					sex = "FEMALE"
				}
				born := p.marriage + 1 + g.rand.Intn(18)
				child := g.newPerson(sex, born, p, p.spouse)
				child.household = p.household
				people = append(people, child)
				next = append(next, child)
			}
		}

		g.marryGeneration(next)
		generation = next
	}

	g.assignDeaths(people)
	g.assignEmigration(people)
	g.fissionHouseholds(people)

	return g.dataset(people), nil
}

func (g *Generator) newPerson(sex string, birthYear int, father, mother *person) *person {
	id := g.nextID
	g.nextID++

	surname := g.names.surnames[g.rand.Intn(len(g.names.surnames))]
	if father != nil {
		surname = surnameOf(father.name)
	}
	given := g.names.maleGiven[g.rand.Intn(len(g.names.maleGiven))]
	if sex == "FEMALE" {
		given = g.names.femaleGiven[g.rand.Intn(len(g.names.femaleGiven))]
	}

	return &person{
		id:        id,
		name:      given + " " + surname,
		sex:       sex,
		birthYear: birthYear,
		father:    father,
		mother:    mother,
	}
}

func (g *Generator) marry(husband, wife *person) {
	year := husband.birthYear + 20 + g.rand.Intn(8)
	if wifeReady := wife.birthYear + 18; wifeReady > year {
		year = wifeReady
	}
	husband.spouse = wife
	wife.spouse = husband
	husband.marriage = year
	wife.marriage = year
}

// marryGeneration pairs men and women born to different fathers. Brides move
// into the groom's household.
func (g *Generator) marryGeneration(generation []*person) {
	var men, women []*person
	for _, p := range generation {
		if p.sex == "MALE" {
			men = append(men, p)
		} else {
			women = append(women, p)
		}
	}
	g.rand.Shuffle(len(women), func(i, j int) {
		women[i], women[j] = women[j], women[i]
	})

	for _, groom := range men {
		if g.rand.Float64() >= g.cfg.MarriageChance {
			continue
		}
		for i, bride := range women {
			if bride == nil || bride.father == groom.father {
				continue
			}
			g.marry(groom, bride)
			bride.household = groom.household
			women[i] = nil
			break
		}
	}
}

func (g *Generator) assignDeaths(people []*person) {
	for _, p := range people {
		lifespan := 55 + g.rand.Intn(40)
		died := p.birthYear + lifespan
		if died <= 2010 {
			p.deathYear = died
		}
	}
}

// assignEmigration drops a fraction of adults from the community partway
// through the survey period, leaving their later membership cells blank.
func (g *Generator) assignEmigration(people []*person) {
	for _, p := range people {
		if g.rand.Float64() >= g.cfg.EmigrationChance {
			continue
		}
		years := domain.SurveyYears[1:]
		p.emigrated = years[g.rand.Intn(len(years))]
	}
}

// fissionHouseholds splits married sons into daughter households. A split
// household keeps its parent's number with a dotted suffix, so household 12
// spawns 12.1 and then 12.2.
func (g *Generator) fissionHouseholds(people []*person) {
	splits := map[string]int{}
	for _, p := range people {
		if p.sex != "MALE" || p.spouse == nil || p.father == nil {
			continue
		}
		if g.rand.Float64() >= g.cfg.FissionChance {
			continue
		}
		parent := p.household
		splits[parent]++
		branch := fmt.Sprintf("%s.%d", parent, splits[parent])
		p.household = branch
		p.spouse.household = branch
	}
}

func (g *Generator) dataset(people []*person) Dataset {
	var ds Dataset
	wealth := map[string]map[int]string{}

	for _, p := range people {
		rec := IdentityRecord{
			Name:      p.name,
			ID:        p.id,
			Sex:       p.sex,
			BestDOB:   strconv.Itoa(p.birthYear),
			BirthYear: strconv.Itoa(p.birthYear),
		}
		// Early birth years are sometimes only known to the decade.
		if p.birthYear < 1925 && g.rand.Float64() < 0.3 {
			rec.BirthYear = fmt.Sprintf("%ds", p.birthYear/10*10)
			rec.BestDOB = rec.BirthYear
		}
		if p.deathYear != 0 {
			rec.DeathYear = strconv.Itoa(p.deathYear)
		}
		if p.father != nil {
			rec.FatherName = p.father.name
			rec.FatherID = strconv.Itoa(p.father.id)
			rec.MotherName = p.mother.name
			rec.MotherID = strconv.Itoa(p.mother.id)
		}
		ds.Identities = append(ds.Identities, rec)

		if p.sex == "MALE" && p.spouse != nil {
			marriage := MarriageRecord{
				HusbandName: p.name,
				HusbandID:   p.id,
				WifeName:    p.spouse.name,
				WifeID:      p.spouse.id,
				Type:        "major",
				Date:        strconv.Itoa(p.marriage),
			}
			if p.deathYear != 0 && (p.spouse.deathYear == 0 || p.spouse.deathYear > p.deathYear) {
				marriage.WidowDate = strconv.Itoa(p.deathYear)
			} else if p.spouse.deathYear != 0 && (p.deathYear == 0 || p.deathYear > p.spouse.deathYear) {
				marriage.WidowDate = strconv.Itoa(p.spouse.deathYear)
			}
			ds.Marriages = append(ds.Marriages, marriage)
		}

		master := MasterRecord{
			ID:         p.id,
			Households: map[int]string{},
			Wealth:     map[int]string{},
		}
		for _, year := range domain.SurveyYears {
			if !p.aliveIn(year) || p.household == "" {
				continue
			}
			if p.emigrated != 0 && year >= p.emigrated {
				continue
			}
			master.Households[year] = p.household
			master.Wealth[year] = g.householdWealth(wealth, p.household, year)
		}
		ds.Master = append(ds.Master, master)
	}

	return ds
}

// householdWealth picks a stable quartile per household-year so that every
// member row reports the same value.
func (g *Generator) householdWealth(wealth map[string]map[int]string, hh string, year int) string {
	byYear, ok := wealth[hh]
	if !ok {
		byYear = map[int]string{}
		wealth[hh] = byYear
	}
	if q, ok := byYear[year]; ok {
		return q
	}
	q := fmt.Sprintf("Q%d", 1+g.rand.Intn(4))
	byYear[year] = q
	return q
}

func surnameOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			return name[i+1:]
		}
	}
	return name
}

type namePools struct {
	surnames    []string
	maleGiven   []string
	femaleGiven []string
}

func defaultNamePools() namePools {
	return namePools{
		surnames:    []string{"Zhang", "Wang", "Li", "Chen", "Liu", "Zhao", "Yang", "Huang", "Wu", "Zhou", "Lin", "Xu"},
		maleGiven:   []string{"Wen", "Bo", "Jun", "Ming", "Feng", "Qiang", "Hai", "Lei", "Tao", "Gang", "Ping", "Yong"},
		femaleGiven: []string{"Mei", "Lan", "Hua", "Xiu", "Qing", "Yan", "Li", "Fang", "Juan", "Na", "Min", "Jing"},
	}
}
